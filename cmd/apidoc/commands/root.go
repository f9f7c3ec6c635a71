// Package commands implements the apidoc command line.
package commands

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lucasvieiramay/apidoc"
	"github.com/lucasvieiramay/apidoc/config"
	"github.com/lucasvieiramay/apidoc/loader"
)

// Setting keys. Each is also read from the matching APIDOC_* variable, with
// dashes turned into underscores (log-level is APIDOC_LOG_LEVEL).
const (
	keyConfig   = "config"
	keyLogLevel = "log-level"
	keyQuiet    = "quiet"
	keyStrict   = "strict"
)

// EnvPrefix prefixes the environment variables bound to global settings.
const EnvPrefix = "APIDOC"

// app holds the state shared by the commands of one invocation.
type app struct {
	settings *viper.Viper
	logger   loader.Logger
}

// NewRootCommand builds the apidoc command tree.
func NewRootCommand() *cobra.Command {
	a := &app{settings: newSettings(), logger: loader.NopLogger{}}

	root := &cobra.Command{
		Use:   "apidoc",
		Short: "Build API documentation from YAML, JSON and TOML fragments",
		Long: TitleStyle.Render("apidoc") + SubtitleStyle.Render(" - build API documentation from fragments") + `

apidoc merges documentation fragments, resolves extends references,
substitutes ${name} arguments and prints the ordered documentation.

` + SubtitleStyle.Render("Examples:") + `
  apidoc build -d docs/                 Build from every fragment in docs/
  apidoc build --config apidoc.yaml     Build from a configuration file
  apidoc build -d docs -a host=api.io   Substitute ${host}
  apidoc merge -d docs --format json    Print the merged fragment tree`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SuggestionsMinimumDistance = 2

	flags := root.PersistentFlags()
	flags.String(keyConfig, "", "configuration file (YAML, JSON or TOML)")
	flags.String(keyLogLevel, "warn", "log level: debug, info, warn or error")
	flags.BoolP(keyQuiet, "q", false, "disable logging")
	_ = a.settings.BindPFlags(flags)

	root.AddCommand(
		newBuildCommand(a),
		newMergeCommand(a),
		newMCPCommand(a),
		newVersionCommand(),
	)
	return root
}

func newSettings() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(keyLogLevel, "warn")
	return v
}

func (a *app) setup(cmd *cobra.Command) error {
	logger, err := newLogger(cmd.ErrOrStderr(), a.settings.GetString(keyLogLevel), a.settings.GetBool(keyQuiet))
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// resolveConfig loads the configuration file, if any, and lays the command
// line input on top of it.
func (a *app) resolveConfig(in *inputFlags) (*config.Config, error) {
	base := config.Default()
	if path := a.settings.GetString(keyConfig); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		base = loaded
	}
	override, err := in.config()
	if err != nil {
		return nil, err
	}
	return config.Merge(base, override)
}

// Execute runs the apidoc command line with fang, which renders help, usage
// and errors.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		NewRootCommand(),
		fang.WithVersion(apidoc.VersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
}
