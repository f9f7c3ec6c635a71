// Package filter decides which versions, categories and methods are displayed.
//
// Filtering happens in two passes over a model.Root. [HideFilteredElements]
// sets the Display flag of every version and category from the include and
// exclude lists of a config.Filter. [RemoveHiddenElements] then prunes the
// graph: hidden versions are deleted, and so are methods whose category is a
// hidden global category.
//
//	filter.HideFilteredElements(root, cfg.Filter)
//	filter.RemoveHiddenElements(root)
//
// Names are matched against the entity Name field, not the map key.
package filter

import (
	"slices"

	"github.com/lucasvieiramay/apidoc/config"
	"github.com/lucasvieiramay/apidoc/loader"
	"github.com/lucasvieiramay/apidoc/model"
)

// Filter applies display rules to an object graph.
type Filter struct {
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger loader.Logger
}

// New creates a new Filter instance.
func New() *Filter {
	return &Filter{}
}

func (f *Filter) log() loader.Logger {
	return loader.OrNop(f.Logger)
}

// Displayed reports whether name passes rule. A non-empty include list
// displays only its names; otherwise names in the exclude list are hidden.
func Displayed(rule config.FilterRule, name string) bool {
	if len(rule.Includes) > 0 {
		return slices.Contains(rule.Includes, name)
	}
	return !slices.Contains(rule.Excludes, name)
}

// HideFilteredElements sets Display on every version, every global category
// and every version's local categories. Methods are not changed.
func (f *Filter) HideFilteredElements(root *model.Root, rules config.Filter) {
	if root == nil {
		return
	}

	hidden := 0
	for _, v := range root.Versions {
		v.Display = Displayed(rules.Versions, v.Name)
		if !v.Display {
			hidden++
		}
	}
	for _, c := range root.Categories {
		c.Display = Displayed(rules.Categories, c.Name)
		if !c.Display {
			hidden++
		}
	}
	for _, v := range root.Versions {
		for _, c := range v.Categories {
			c.Display = Displayed(rules.Categories, c.Name)
			if !c.Display {
				hidden++
			}
		}
	}
	f.log().Debug("applied display filters", "hidden", hidden)
}

// RemoveHiddenElements deletes hidden versions, then deletes from the
// remaining versions every method whose category names a hidden global
// category. Methods naming unknown categories are kept, and hidden category
// objects stay in their catalogues.
func (f *Filter) RemoveHiddenElements(root *model.Root) {
	if root == nil {
		return
	}

	for key, v := range root.Versions {
		if !v.Display {
			root.RemoveVersion(key)
			f.log().Debug("removed hidden version", "version", key)
		}
	}

	for versionKey, v := range root.Versions {
		for key, m := range v.Methods {
			c, ok := root.Categories[m.Category]
			if ok && !c.Display {
				v.RemoveMethod(key)
				f.log().Debug("removed method of hidden category",
					"version", versionKey, "method", key, "category", m.Category)
			}
		}
	}
}

var defaultFilter = New()

// HideFilteredElements sets display flags using a default Filter.
func HideFilteredElements(root *model.Root, rules config.Filter) {
	defaultFilter.HideFilteredElements(root, rules)
}

// RemoveHiddenElements prunes hidden elements using a default Filter.
func RemoveHiddenElements(root *model.Root) {
	defaultFilter.RemoveHiddenElements(root)
}
