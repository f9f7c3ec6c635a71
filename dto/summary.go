package dto

// Summary is a serializable outline of a view, as printed by the command
// line and returned by the MCP server.
type Summary struct {
	Versions   []VersionSummary  `json:"versions" yaml:"versions"`
	Categories []CategorySummary `json:"categories" yaml:"categories"`
	Stats      Stats             `json:"stats" yaml:"stats"`
}

// VersionSummary outlines one version.
type VersionSummary struct {
	Name    string `json:"name" yaml:"name"`
	Label   string `json:"label" yaml:"label"`
	Status  string `json:"status,omitempty" yaml:"status,omitempty"`
	Methods int    `json:"methods" yaml:"methods"`
}

// CategorySummary outlines one category.
type CategorySummary struct {
	Name    string          `json:"name" yaml:"name"`
	Label   string          `json:"label" yaml:"label"`
	Order   int             `json:"order" yaml:"order"`
	Methods []MethodSummary `json:"methods" yaml:"methods"`
}

// MethodSummary outlines one method group.
type MethodSummary struct {
	Name     string   `json:"name" yaml:"name"`
	Label    string   `json:"label" yaml:"label"`
	Versions []string `json:"versions" yaml:"versions"`
}

// Summarize outlines r, keeping its order.
func (r *Root) Summarize() Summary {
	s := Summary{
		Versions:   make([]VersionSummary, 0, len(r.versions)),
		Categories: make([]CategorySummary, 0, len(r.categories)),
		Stats:      r.Stats(),
	}
	for _, v := range r.versions {
		s.Versions = append(s.Versions, VersionSummary{
			Name:    v.Name,
			Label:   v.Label,
			Status:  v.Status,
			Methods: len(v.Methods),
		})
	}
	for _, c := range r.categories {
		cs := CategorySummary{
			Name:    c.Name,
			Label:   c.Label,
			Order:   c.Order,
			Methods: make([]MethodSummary, 0, len(c.Methods)),
		}
		for _, m := range c.Methods {
			cs.Methods = append(cs.Methods, MethodSummary{
				Name:     m.Name,
				Label:    m.Label,
				Versions: m.Versions(),
			})
		}
		s.Categories = append(s.Categories, cs)
	}
	return s
}
