package builder

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lucasvieiramay/apidoc/docerrors"
	"github.com/lucasvieiramay/apidoc/loader"
	"github.com/lucasvieiramay/apidoc/model"
	"github.com/lucasvieiramay/apidoc/node"
)

// Scope keys of the documentation tree.
const (
	KeyVersions   = "versions"
	KeyCategories = "categories"
	KeyMethods    = "methods"
	KeyTypes      = "types"
	KeyReferences = "references"
)

var versionScopes = []string{KeyMethods, KeyCategories, KeyTypes, KeyReferences}

// Builder turns a merged, extended tree into a model.Root.
//
// Concurrency: a Builder holds no state between calls and may be shared.
type Builder struct {
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger loader.Logger
	// StrictReferences makes a method naming an unknown category an error.
	StrictReferences bool
}

// New creates a new Builder instance.
func New() *Builder {
	return &Builder{}
}

func (b *Builder) log() loader.Logger {
	return loader.OrNop(b.Logger)
}

// Build creates the object graph described by tree.
func (b *Builder) Build(tree *node.Node) (*model.Root, error) {
	root, err := b.build(tree)
	if err != nil {
		return nil, fmt.Errorf("builder: %w", err)
	}
	return root, nil
}

func (b *Builder) build(tree *node.Node) (*model.Root, error) {
	if !tree.IsMapping() {
		return nil, &docerrors.StructureError{
			Expected: "mapping",
			Actual:   node.KindName(tree),
			Message:  "the documentation tree must be a mapping",
		}
	}

	versions, ok := tree.Get(KeyVersions)
	if !ok {
		return nil, &docerrors.StructureError{Path: KeyVersions, Message: "no versions defined"}
	}
	if !versions.IsMapping() {
		return nil, &docerrors.StructureError{Path: KeyVersions, Expected: "mapping", Actual: node.KindName(versions)}
	}

	root := model.NewRoot()

	categories, err := scope(tree, KeyCategories, nil)
	if err != nil {
		return nil, err
	}
	err = eachEntity(categories, []string{KeyCategories}, func(name string, entity *node.Node, path []string) error {
		c, err := buildCategory(name, entity, path)
		if err != nil {
			return err
		}
		root.AddCategory(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachEntity(versions, []string{KeyVersions}, func(name string, entity *node.Node, path []string) error {
		v, err := b.buildVersion(root, name, entity, path)
		if err != nil {
			return err
		}
		root.AddVersion(v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.log().Debug("built documentation graph",
		"versions", len(root.Versions),
		"categories", len(root.Categories))
	return root, nil
}

func (b *Builder) buildVersion(root *model.Root, name string, entity *node.Node, path []string) (*model.Version, error) {
	v := model.NewVersion(name)
	if err := decode(entity, path, versionScopes, v); err != nil {
		return nil, err
	}
	v.Name = name
	v.Label = labelOrDefault(v.Label, name)

	categories, err := scope(entity, KeyCategories, path)
	if err != nil {
		return nil, err
	}
	err = eachEntity(categories, append(slices.Clip(path), KeyCategories), func(name string, entity *node.Node, path []string) error {
		c, err := buildCategory(name, entity, path)
		if err != nil {
			return err
		}
		v.AddCategory(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	methods, err := scope(entity, KeyMethods, path)
	if err != nil {
		return nil, err
	}
	err = eachEntity(methods, append(slices.Clip(path), KeyMethods), func(name string, entity *node.Node, path []string) error {
		m, err := buildMethod(name, entity, path)
		if err != nil {
			return err
		}
		if err := b.checkCategory(root, v, m, path); err != nil {
			return err
		}
		v.AddMethod(m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	types, err := scope(entity, KeyTypes, path)
	if err != nil {
		return nil, err
	}
	err = eachEntity(types, append(slices.Clip(path), KeyTypes), func(name string, entity *node.Node, path []string) error {
		t := &model.Type{}
		if err := decode(entity, path, nil, t); err != nil {
			return err
		}
		t.Name = name
		t.Label = labelOrDefault(t.Label, name)
		v.AddType(t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	references, err := scope(entity, KeyReferences, path)
	if err != nil {
		return nil, err
	}
	err = eachEntity(references, append(slices.Clip(path), KeyReferences), func(name string, entity *node.Node, path []string) error {
		ref := &model.Reference{}
		if err := decode(entity, path, nil, ref); err != nil {
			return err
		}
		ref.Name = name
		ref.Label = labelOrDefault(ref.Label, name)
		v.AddReference(ref)
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.log().Debug("built version",
		"version", name,
		"methods", len(v.Methods),
		"categories", len(v.Categories),
		"types", len(v.Types),
		"references", len(v.References))
	return v, nil
}

func buildCategory(name string, entity *node.Node, path []string) (*model.Category, error) {
	c := model.NewCategory(name)
	if err := decode(entity, path, nil, c); err != nil {
		return nil, err
	}
	c.Name = name
	c.Label = labelOrDefault(c.Label, name)
	return c, nil
}

func buildMethod(name string, entity *node.Node, path []string) (*model.Method, error) {
	m := model.NewMethod(name)
	if err := decode(entity, path, nil, m); err != nil {
		return nil, err
	}
	m.Name = name
	m.Label = labelOrDefault(m.Label, name)
	m.HTTPMethod = strings.ToUpper(strings.TrimSpace(m.HTTPMethod))
	if m.HTTPMethod == "" {
		m.HTTPMethod = model.DefaultHTTPMethod
	}
	for key, p := range m.RequestHeaders {
		if p == nil {
			p = &model.Parameter{}
			m.RequestHeaders[key] = p
		}
		p.Name = key
	}
	for key, p := range m.RequestParameters {
		if p == nil {
			p = &model.Parameter{}
			m.RequestParameters[key] = p
		}
		p.Name = key
	}
	m.ResponseCodes = slices.DeleteFunc(m.ResponseCodes, func(rc *model.ResponseCode) bool { return rc == nil })
	return m, nil
}

// checkCategory enforces that m names a known category when strict
// references are enabled. Methods without a category are always accepted.
func (b *Builder) checkCategory(root *model.Root, v *model.Version, m *model.Method, path []string) error {
	if m.Category == "" {
		return nil
	}
	if _, ok := v.Categories[m.Category]; ok {
		return nil
	}
	if _, ok := root.Categories[m.Category]; ok {
		return nil
	}
	if !b.StrictReferences {
		b.log().Debug("method refers to an unknown category",
			"path", joinPath(path), "category", m.Category)
		return nil
	}
	return &docerrors.ReferenceError{
		Ref:     m.Category,
		Path:    joinPath(path),
		Message: "unknown category",
	}
}

// scope returns the mapping stored under key in parent. A missing or null
// scope is empty.
func scope(parent *node.Node, key string, parentPath []string) (*node.Node, error) {
	n, ok := parent.Get(key)
	if !ok || isNull(n) {
		return nil, nil
	}
	if !n.IsMapping() {
		return nil, &docerrors.StructureError{
			Path:     joinPath(append(slices.Clip(parentPath), key)),
			Expected: "mapping",
			Actual:   node.KindName(n),
		}
	}
	return n, nil
}

// eachEntity calls fn for every entry of a scope in mapping order. A null
// entry is an entity with no attributes.
func eachEntity(scope *node.Node, scopePath []string, fn func(name string, entity *node.Node, path []string) error) error {
	for _, name := range scope.Keys() {
		entity, _ := scope.Get(name)
		path := append(slices.Clip(scopePath), name)
		if isNull(entity) {
			entity = node.NewMapping()
		}
		if !entity.IsMapping() {
			return &docerrors.StructureError{
				Path:     joinPath(path),
				Expected: "mapping",
				Actual:   node.KindName(entity),
			}
		}
		if err := fn(name, entity, path); err != nil {
			return err
		}
	}
	return nil
}

// decode copies the attributes of entity, minus the excluded keys, into out.
// Values are weakly typed: "3" decodes into an int and "false" into a bool.
func decode(entity *node.Node, path []string, exclude []string, out any) error {
	attrs := make(map[string]any, entity.Len())
	for _, key := range entity.Keys() {
		if slices.Contains(exclude, key) {
			continue
		}
		value, _ := entity.Get(key)
		attrs[key] = value.ToAny()
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncType(castIntHook),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(attrs); err != nil {
		return &docerrors.StructureError{
			Path:    joinPath(path),
			Message: "invalid attributes",
			Cause:   err,
		}
	}
	return nil
}

// castIntHook converts decimal strings and whole floats into integer fields.
// "08" is eight, and 1.5 is an error rather than 1.
func castIntHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if data == nil {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}
	switch v := data.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%q is not a decimal integer", v)
		}
		return n, nil
	case float32, float64:
		f := cast.ToFloat64(v)
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("%v is not a whole number", v)
		}
		return int(f), nil
	default:
		return cast.ToIntE(data)
	}
}

func isNull(n *node.Node) bool {
	return n == nil || (n.IsScalar() && n.Value() == nil)
}

// labelOrDefault returns label, or the title-cased name when label is empty.
// Underscores and hyphens in the name become spaces.
func labelOrDefault(label, name string) string {
	if label != "" {
		return label
	}
	words := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return cases.Title(language.English, cases.NoLower).String(words)
}

func joinPath(path []string) string {
	return strings.Join(path, "/")
}

var defaultBuilder = New()

// Build creates the object graph described by tree using a default Builder.
func Build(tree *node.Node) (*model.Root, error) {
	return defaultBuilder.Build(tree)
}
