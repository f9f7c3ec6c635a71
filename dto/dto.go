// Package dto wraps a pruned model.Root in the ordered view used for display.
//
// [NewRoot] groups the methods of every version by category and by name:
//
//	view := dto.NewRoot(root)
//	for _, c := range view.Categories() {    // by order, then name
//	    for _, m := range c.Methods {        // by name
//	        fmt.Println(c.Label, m.Name, m.Versions())
//	    }
//	}
//
// A [MethodDto] stands for every version's method of the same name in the
// same category. Categories come from the global catalogue, then from the
// version's own catalogue; a method naming neither is grouped under a
// category synthesized from the name it gives. Hidden categories are skipped.
package dto

import (
	"cmp"
	"slices"

	"github.com/lucasvieiramay/apidoc/model"
)

// UncategorizedLabel labels the group of methods that name no category.
const UncategorizedLabel = "Uncategorized"

// CategoryDto is a displayed category with its methods.
type CategoryDto struct {
	Name        string
	Label       string
	Description string
	Order       int
	Methods     []*MethodDto
}

// NewCategoryDto wraps c.
func NewCategoryDto(c *model.Category) *CategoryDto {
	return &CategoryDto{
		Name:        c.Name,
		Label:       c.Label,
		Description: c.Description,
		Order:       c.Order,
	}
}

// Compare orders categories by Order, then by Name.
func (c *CategoryDto) Compare(other *CategoryDto) int {
	return cmp.Or(
		cmp.Compare(c.Order, other.Order),
		cmp.Compare(c.Name, other.Name),
	)
}

// Less reports whether c sorts before other.
func (c *CategoryDto) Less(other *CategoryDto) bool {
	return c.Compare(other) < 0
}

// Equal reports whether c and other have the same order and name.
func (c *CategoryDto) Equal(other *CategoryDto) bool {
	return c.Compare(other) == 0
}

// MethodDto groups the same-named method of several versions.
type MethodDto struct {
	Name  string
	Label string

	versions []string
	changes  map[string]*model.Method
}

// NewMethodDto returns an empty group for methods called name.
func NewMethodDto(name string) *MethodDto {
	return &MethodDto{Name: name, changes: make(map[string]*model.Method)}
}

// Add records m as the declaration of the method in version.
func (m *MethodDto) Add(version string, method *model.Method) {
	if _, exists := m.changes[version]; !exists {
		m.versions = append(m.versions, version)
	}
	m.changes[version] = method
	if m.Label == "" {
		m.Label = method.Label
	}
}

// Versions returns the versions declaring the method.
func (m *MethodDto) Versions() []string {
	return slices.Clone(m.versions)
}

// Method returns the declaration of the method in version.
func (m *MethodDto) Method(version string) (*model.Method, bool) {
	method, ok := m.changes[version]
	return method, ok
}

// Compare orders methods by name.
func (m *MethodDto) Compare(other *MethodDto) int {
	return cmp.Compare(m.Name, other.Name)
}

// Less reports whether m sorts before other.
func (m *MethodDto) Less(other *MethodDto) bool {
	return m.Compare(other) < 0
}

// Equal reports whether m and other have the same name.
func (m *MethodDto) Equal(other *MethodDto) bool {
	return m.Compare(other) == 0
}

// Root is the ordered view of a model.Root.
type Root struct {
	root       *model.Root
	versions   []*model.Version
	categories []*CategoryDto
}

// Stats counts the elements of a view.
type Stats struct {
	Versions   int `json:"versions" yaml:"versions"`
	Categories int `json:"categories" yaml:"categories"`
	Methods    int `json:"methods" yaml:"methods"`
	Types      int `json:"types" yaml:"types"`
	References int `json:"references" yaml:"references"`
}

// NewRoot builds the ordered view of root. The view reads root once;
// later changes to root are not reflected.
func NewRoot(root *model.Root) *Root {
	r := &Root{root: root}
	if root == nil {
		return r
	}

	for _, v := range root.Versions {
		r.versions = append(r.versions, v)
	}
	slices.SortFunc(r.versions, func(a, b *model.Version) int { return cmp.Compare(a.Name, b.Name) })

	byName := make(map[string]*CategoryDto)
	hidden := make(map[string]bool)
	methods := make(map[string]map[string]*MethodDto)

	category := func(v *model.Version, name string) *CategoryDto {
		if c, ok := byName[name]; ok {
			return c
		}
		source, ok := root.Categories[name]
		if !ok {
			source, ok = v.Categories[name]
		}
		if !ok {
			source = model.NewCategory(name)
			source.Label = name
			if name == "" {
				source.Label = UncategorizedLabel
			}
		}
		if !source.Display {
			hidden[name] = true
			return nil
		}
		c := NewCategoryDto(source)
		c.Name = name
		byName[name] = c
		methods[name] = make(map[string]*MethodDto)
		r.categories = append(r.categories, c)
		return c
	}

	for _, v := range r.versions {
		for key, m := range v.Methods {
			if hidden[m.Category] {
				continue
			}
			c := category(v, m.Category)
			if c == nil {
				continue
			}
			name := cmp.Or(m.Name, key)
			group, ok := methods[m.Category][name]
			if !ok {
				group = NewMethodDto(name)
				methods[m.Category][name] = group
				c.Methods = append(c.Methods, group)
			}
			group.Add(v.Name, m)
		}
	}

	for _, c := range r.categories {
		slices.SortFunc(c.Methods, (*MethodDto).Compare)
	}
	slices.SortFunc(r.categories, (*CategoryDto).Compare)
	return r
}

// Model returns the wrapped graph.
func (r *Root) Model() *model.Root {
	return r.root
}

// Versions returns the versions sorted by name.
func (r *Root) Versions() []*model.Version {
	return slices.Clone(r.versions)
}

// Categories returns the displayed categories sorted by order, then name.
func (r *Root) Categories() []*CategoryDto {
	return slices.Clone(r.categories)
}

// Stats counts the versions, displayed categories, method groups, types and
// references of the view.
func (r *Root) Stats() Stats {
	s := Stats{Versions: len(r.versions), Categories: len(r.categories)}
	for _, c := range r.categories {
		s.Methods += len(c.Methods)
	}
	for _, v := range r.versions {
		s.Types += len(v.Types)
		s.References += len(v.References)
	}
	return s
}
