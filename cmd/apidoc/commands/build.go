package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucasvieiramay/apidoc/dto"
	"github.com/lucasvieiramay/apidoc/internal/cliutil"
	"github.com/lucasvieiramay/apidoc/source"
)

func newBuildCommand(a *app) *cobra.Command {
	var (
		in     inputFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the documentation and print its summary",
		Long: `Build loads every fragment, merges and extends them, substitutes the
arguments, applies the filters and prints the resulting documentation
outline: versions, then categories in display order with their methods.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cliutil.ValidateOutputFormat(format, cliutil.FormatText, cliutil.FormatJSON, cliutil.FormatYAML); err != nil {
				return err
			}
			cfg, err := a.resolveConfig(&in)
			if err != nil {
				return err
			}

			src := &source.Source{
				Logger:           a.logger,
				StrictReferences: a.settings.GetBool(keyStrict),
			}
			result, err := src.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			summary := result.Root.Summarize()
			if format != cliutil.FormatText {
				return cliutil.WriteStructured(cmd.OutOrStdout(), summary, format)
			}
			renderSummary(cmd.OutOrStdout(), summary, result.Unresolved)
			return nil
		},
	}
	in.register(cmd, true)
	cmd.Flags().StringVar(&format, "format", cliutil.FormatText, "output format: text, json or yaml")
	cmd.Flags().Bool(keyStrict, false, "fail on methods naming an unknown category")
	_ = a.settings.BindPFlag(keyStrict, cmd.Flags().Lookup(keyStrict))
	return cmd
}

// renderSummary prints s as styled text.
func renderSummary(w io.Writer, s dto.Summary, unresolved []string) {
	cliutil.Writef(w, "%s\n", TitleStyle.Render("Versions"))
	for _, v := range s.Versions {
		line := "  " + NameStyle.Render(v.Name)
		if v.Label != "" {
			line += " " + v.Label
		}
		if v.Status != "" {
			line += " " + SubtitleStyle.Render("("+v.Status+")")
		}
		cliutil.Writef(w, "%s %s\n", line, SubtitleStyle.Render(plural(v.Methods, "method")))
	}

	cliutil.Writef(w, "\n%s\n", TitleStyle.Render("Categories"))
	for _, c := range s.Categories {
		cliutil.Writef(w, "  %s %s\n", c.Label, SubtitleStyle.Render(fmt.Sprintf("[%s, order %d]", c.Name, c.Order)))
		for _, m := range c.Methods {
			cliutil.Writef(w, "    %s %s\n", NameStyle.Render(m.Name), SubtitleStyle.Render(strings.Join(m.Versions, ", ")))
		}
	}

	if len(unresolved) > 0 {
		cliutil.Writef(w, "\n%s %s\n", WarningStyle.Render("Unresolved placeholders:"), strings.Join(unresolved, ", "))
	}

	st := s.Stats
	cliutil.Writef(w, "\n%s\n", SuccessStyle.Render(fmt.Sprintf("%s, %s, %s, %s, %s",
		plural(st.Versions, "version"),
		plural(st.Categories, "category"),
		plural(st.Methods, "method"),
		plural(st.Types, "type"),
		plural(st.References, "reference"))))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
