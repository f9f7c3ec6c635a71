package config

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/go-viper/mapstructure/v2"

	"github.com/lucasvieiramay/apidoc/docerrors"
	"github.com/lucasvieiramay/apidoc/loader"
	"github.com/lucasvieiramay/apidoc/node"
)

//go:embed schema.cue
var schemaSource string

// Load reads the configuration file at path. Relative input paths are
// resolved against the directory holding the file.
func Load(path string) (*Config, error) {
	tree, err := loader.LoadWithOptions(loader.WithFilePath(path))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Decode(tree, path)
	if err != nil {
		return nil, err
	}
	cfg.ResolvePaths(filepath.Dir(path))
	return cfg, nil
}

// Decode validates a raw configuration tree against the schema and decodes
// it. source names the tree in error messages. Paths are left as written.
func Decode(tree *node.Node, source string) (*Config, error) {
	if tree == nil {
		tree = node.NewMapping()
	}
	if err := validateSchema(tree, source); err != nil {
		return nil, err
	}

	raw := tree.Clone()
	var args *node.Node
	if input, ok := raw.Get("input"); ok && input.IsMapping() {
		args, _ = input.Get("arguments")
		input.Delete("arguments")
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.DecodeHookFuncKind(trimSpaceHook),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("config: failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw.ToAny()); err != nil {
		return nil, &docerrors.ConfigError{Option: source, Message: "cannot decode configuration", Cause: err}
	}

	if args.IsMapping() {
		for _, name := range args.Keys() {
			value, _ := args.Get(name)
			cfg.Input.Arguments = append(cfg.Input.Arguments, Argument{Name: name, Value: value.Value()})
		}
	}
	return cfg, nil
}

// trimSpaceHook trims the elements of comma-separated lists.
func trimSpaceHook(from, to reflect.Kind, data any) (any, error) {
	if from != reflect.String || to != reflect.String {
		return data, nil
	}
	return strings.TrimSpace(data.(string)), nil
}

// ResolvePaths makes relative directories and files relative to baseDir.
func (c *Config) ResolvePaths(baseDir string) {
	if baseDir == "" {
		return
	}
	resolve := func(paths []string) {
		for i, p := range paths {
			if p != "" && !filepath.IsAbs(p) {
				paths[i] = filepath.Join(baseDir, p)
			}
		}
	}
	resolve(c.Input.Directories)
	resolve(c.Input.Files)
}

func validateSchema(tree *node.Node, source string) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("config: internal schema error: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	value := ctx.Encode(tree.ToAny())
	if err := value.Err(); err != nil {
		return &docerrors.ConfigError{Option: source, Message: "cannot encode configuration", Cause: err}
	}
	if err := def.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return &docerrors.ConfigError{Option: source, Message: formatSchemaError(err)}
	}
	return nil
}

func formatSchemaError(err error) string {
	var lines []string
	for _, e := range cueerrors.Errors(err) {
		path := strings.Join(cueerrors.Path(e), ".")
		msg := e.Error()
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		if path != "" {
			msg = path + ": " + msg
		}
		lines = append(lines, msg)
	}
	if len(lines) == 0 {
		return err.Error()
	}
	return strings.Join(lines, "; ")
}
