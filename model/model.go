// Package model defines the typed documentation graph built from a merged tree.
//
// A [Root] holds versions and the global category catalogue. Each
// [Version] holds its methods, an optional local category catalogue, and the
// types and references it documents. Entities are kept in maps keyed by name;
// the accompanying order slices record the order of the source mapping so
// that iteration is deterministic.
//
// Methods refer to categories by name only. The graph is created by the
// builder package, mutated only by the filter package, and read-only after.
package model

import (
	"cmp"
	"slices"
)

// DefaultCategoryOrder is the order of a category that sets none.
const DefaultCategoryOrder = 99

// Root is the top of the documentation graph.
type Root struct {
	Versions   map[string]*Version
	Categories map[string]*Category

	VersionOrder  []string
	CategoryOrder []string
}

// NewRoot returns an empty Root.
func NewRoot() *Root {
	return &Root{
		Versions:   make(map[string]*Version),
		Categories: make(map[string]*Category),
	}
}

// AddVersion stores v under its name.
func (r *Root) AddVersion(v *Version) {
	r.VersionOrder = addName(r.Versions, r.VersionOrder, v.Name, v)
}

// AddCategory stores c in the global catalogue.
func (r *Root) AddCategory(c *Category) {
	r.CategoryOrder = addName(r.Categories, r.CategoryOrder, c.Name, c)
}

// RemoveVersion deletes the version called name.
func (r *Root) RemoveVersion(name string) {
	delete(r.Versions, name)
	r.VersionOrder = removeName(r.Versions, r.VersionOrder, name)
}

// OrderedVersions returns the versions in source order.
func (r *Root) OrderedVersions() []*Version {
	return inOrder(r.Versions, r.VersionOrder)
}

// OrderedCategories returns the global categories in source order.
func (r *Root) OrderedCategories() []*Category {
	return inOrder(r.Categories, r.CategoryOrder)
}

// Version is one documented version of the API.
type Version struct {
	Name        string `mapstructure:"-"`
	Display     bool   `mapstructure:"display"`
	Label       string `mapstructure:"label"`
	Description string `mapstructure:"description"`
	URI         string `mapstructure:"uri"`
	Major       int    `mapstructure:"major"`
	Minor       int    `mapstructure:"minor"`
	Status      string `mapstructure:"status"`

	Methods    map[string]*Method    `mapstructure:"-"`
	Categories map[string]*Category  `mapstructure:"-"`
	Types      map[string]*Type      `mapstructure:"-"`
	References map[string]*Reference `mapstructure:"-"`

	MethodOrder    []string `mapstructure:"-"`
	CategoryOrder  []string `mapstructure:"-"`
	TypeOrder      []string `mapstructure:"-"`
	ReferenceOrder []string `mapstructure:"-"`
}

// NewVersion returns a displayed, empty version.
func NewVersion(name string) *Version {
	return &Version{
		Name:       name,
		Display:    true,
		Methods:    make(map[string]*Method),
		Categories: make(map[string]*Category),
		Types:      make(map[string]*Type),
		References: make(map[string]*Reference),
	}
}

// AddMethod stores m under its name.
func (v *Version) AddMethod(m *Method) {
	v.MethodOrder = addName(v.Methods, v.MethodOrder, m.Name, m)
}

// RemoveMethod deletes the method called name.
func (v *Version) RemoveMethod(name string) {
	delete(v.Methods, name)
	v.MethodOrder = removeName(v.Methods, v.MethodOrder, name)
}

// AddCategory stores c in the version's local catalogue.
func (v *Version) AddCategory(c *Category) {
	v.CategoryOrder = addName(v.Categories, v.CategoryOrder, c.Name, c)
}

// AddType stores t under its name.
func (v *Version) AddType(t *Type) {
	v.TypeOrder = addName(v.Types, v.TypeOrder, t.Name, t)
}

// AddReference stores ref under its name.
func (v *Version) AddReference(ref *Reference) {
	v.ReferenceOrder = addName(v.References, v.ReferenceOrder, ref.Name, ref)
}

// OrderedMethods returns the methods in source order.
func (v *Version) OrderedMethods() []*Method {
	return inOrder(v.Methods, v.MethodOrder)
}

// OrderedCategories returns the local categories in source order.
func (v *Version) OrderedCategories() []*Category {
	return inOrder(v.Categories, v.CategoryOrder)
}

// OrderedTypes returns the types in source order.
func (v *Version) OrderedTypes() []*Type {
	return inOrder(v.Types, v.TypeOrder)
}

// OrderedReferences returns the references in source order.
func (v *Version) OrderedReferences() []*Reference {
	return inOrder(v.References, v.ReferenceOrder)
}

// Category groups methods for display.
type Category struct {
	Name        string `mapstructure:"-"`
	Display     bool   `mapstructure:"display"`
	Order       int    `mapstructure:"order"`
	Label       string `mapstructure:"label"`
	Description string `mapstructure:"description"`
}

// NewCategory returns a displayed category with the default order.
func NewCategory(name string) *Category {
	return &Category{Name: name, Display: true, Order: DefaultCategoryOrder}
}

// Method is one documented API call.
type Method struct {
	Name        string `mapstructure:"-"`
	Display     bool   `mapstructure:"display"`
	Label       string `mapstructure:"label"`
	Description string `mapstructure:"description"`
	HTTPMethod  string `mapstructure:"method"`
	URI         string `mapstructure:"uri"`
	Code        int    `mapstructure:"code"`
	Category    string `mapstructure:"category"`

	RequestHeaders    map[string]*Parameter `mapstructure:"request_headers"`
	RequestParameters map[string]*Parameter `mapstructure:"request_parameters"`
	ResponseCodes     []*ResponseCode       `mapstructure:"response_codes"`
}

// DefaultHTTPMethod and DefaultCode apply to methods that set neither.
const (
	DefaultHTTPMethod = "GET"
	DefaultCode       = 200
)

// NewMethod returns a displayed GET method answering 200.
func NewMethod(name string) *Method {
	return &Method{Name: name, Display: true, HTTPMethod: DefaultHTTPMethod, Code: DefaultCode}
}

// Compare orders methods by name.
func (m *Method) Compare(other *Method) int {
	return cmp.Compare(m.Name, other.Name)
}

// Less reports whether m sorts before other.
func (m *Method) Less(other *Method) bool {
	return m.Compare(other) < 0
}

// Equal reports whether m and other have the same name.
func (m *Method) Equal(other *Method) bool {
	return m.Compare(other) == 0
}

// Parameter describes a request header or parameter.
type Parameter struct {
	Name        string `mapstructure:"-"`
	Description string `mapstructure:"description"`
	Type        string `mapstructure:"type"`
	Optional    bool   `mapstructure:"optional"`
	Sample      string `mapstructure:"sample"`
}

// ResponseCode describes one status code a method may answer.
type ResponseCode struct {
	Code        int    `mapstructure:"code"`
	Message     string `mapstructure:"message"`
	Description string `mapstructure:"description"`
}

// Type documents a data type used by methods.
type Type struct {
	Name        string            `mapstructure:"-"`
	Label       string            `mapstructure:"label"`
	Description string            `mapstructure:"description"`
	Category    string            `mapstructure:"category"`
	Item        string            `mapstructure:"item"`
	Format      map[string]string `mapstructure:"format"`
}

// Reference documents a reusable element referenced by methods.
type Reference struct {
	Name        string `mapstructure:"-"`
	Label       string `mapstructure:"label"`
	Description string `mapstructure:"description"`
}

// SortedParameters returns params ordered by name.
func SortedParameters(params map[string]*Parameter) []*Parameter {
	out := make([]*Parameter, 0, len(params))
	for _, p := range params {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *Parameter) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

func addName[T any](m map[string]*T, order []string, name string, v *T) []string {
	if _, exists := m[name]; !exists {
		order = append(order, name)
	}
	m[name] = v
	return order
}

// removeName drops name from order, along with any names already deleted
// from m directly.
func removeName[T any](m map[string]*T, order []string, name string) []string {
	return slices.DeleteFunc(order, func(n string) bool {
		_, ok := m[n]
		return n == name || !ok
	})
}

func inOrder[T any](m map[string]*T, order []string) []*T {
	out := make([]*T, 0, len(m))
	for _, name := range order {
		if v, ok := m[name]; ok {
			out = append(out, v)
		}
	}
	return out
}
