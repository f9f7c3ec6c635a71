package dto

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasvieiramay/apidoc/model"
)

func TestCategoryDtoOrdering(t *testing.T) {
	t.Run("equal on order and name", func(t *testing.T) {
		c1 := NewCategoryDto(model.NewCategory("a"))
		c1.Order = 1
		c2 := NewCategoryDto(model.NewCategory("a"))
		c2.Order = 1
		assert.True(t, c1.Equal(c2))
		assert.False(t, c1.Less(c2))
	})

	t.Run("less on name", func(t *testing.T) {
		c1 := NewCategoryDto(model.NewCategory("a"))
		c2 := NewCategoryDto(model.NewCategory("b"))
		assert.True(t, c1.Less(c2))
		assert.False(t, c1.Equal(c2))
	})

	t.Run("less on order", func(t *testing.T) {
		c1 := NewCategoryDto(model.NewCategory("a"))
		c1.Order = 1
		c2 := NewCategoryDto(model.NewCategory("a"))
		c2.Order = 2
		assert.True(t, c1.Less(c2))
		assert.False(t, c1.Equal(c2))
	})

	t.Run("order before name", func(t *testing.T) {
		c1 := NewCategoryDto(model.NewCategory("z"))
		c1.Order = 1
		c2 := NewCategoryDto(model.NewCategory("a"))
		c2.Order = 2
		assert.True(t, c1.Less(c2))
	})
}

func TestMethodDtoOrdering(t *testing.T) {
	a := NewMethodDto("a")
	a2 := NewMethodDto("a")
	b := NewMethodDto("b")
	assert.True(t, a.Equal(a2))
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
}

func buildRoot() *model.Root {
	root := model.NewRoot()

	users := model.NewCategory("users")
	users.Order = 1
	users.Label = "Users"
	root.AddCategory(users)
	admin := model.NewCategory("admin")
	admin.Display = false
	root.AddCategory(admin)
	root.AddCategory(model.NewCategory("billing"))

	v2 := model.NewVersion("v2")
	v1 := model.NewVersion("v1")
	root.AddVersion(v2)
	root.AddVersion(v1)

	for _, v := range []*model.Version{v1, v2} {
		for _, entry := range []struct{ name, category string }{
			{"list", "users"},
			{"create", "users"},
			{"purge", "admin"},
			{"ping", ""},
		} {
			m := model.NewMethod(entry.name)
			m.Category = entry.category
			m.Label = entry.name + " " + v.Name
			v.AddMethod(m)
		}
	}

	invoice := model.NewMethod("invoice")
	invoice.Category = "billing"
	v2.AddMethod(invoice)

	legacy := model.NewMethod("legacy")
	legacy.Category = "old"
	local := model.NewCategory("old")
	local.Order = 50
	local.Label = "Old stuff"
	v1.AddCategory(local)
	v1.AddMethod(legacy)

	tagged := model.NewMethod("tagged")
	tagged.Category = "misc"
	v1.AddMethod(tagged)

	v1.AddType(&model.Type{Name: "user"})
	v2.AddReference(&model.Reference{Name: "page"})
	return root
}

func TestNewRoot(t *testing.T) {
	view := NewRoot(buildRoot())

	var versions []string
	for _, v := range view.Versions() {
		versions = append(versions, v.Name)
	}
	assert.Equal(t, []string{"v1", "v2"}, versions)

	var categories []string
	for _, c := range view.Categories() {
		categories = append(categories, c.Name)
	}
	assert.Equal(t, []string{"users", "old", "", "billing", "misc"}, categories)

	users := view.Categories()[0]
	require.Len(t, users.Methods, 2)
	assert.Equal(t, "create", users.Methods[0].Name)
	assert.Equal(t, "list", users.Methods[1].Name)
	assert.Equal(t, []string{"v1", "v2"}, users.Methods[1].Versions())
	assert.Equal(t, "list v1", users.Methods[1].Label)

	m, ok := users.Methods[1].Method("v2")
	require.True(t, ok)
	assert.Equal(t, "list v2", m.Label)
	_, ok = users.Methods[1].Method("v3")
	assert.False(t, ok)

	old := view.Categories()[1]
	assert.Equal(t, "Old stuff", old.Label)
	assert.Equal(t, 50, old.Order)

	uncategorized := view.Categories()[2]
	assert.Equal(t, UncategorizedLabel, uncategorized.Label)
	assert.Equal(t, model.DefaultCategoryOrder, uncategorized.Order)

	misc := view.Categories()[4]
	assert.Equal(t, "misc", misc.Label)
	assert.Equal(t, []string{"v1"}, misc.Methods[0].Versions())

	billing := view.Categories()[3]
	assert.Equal(t, []string{"v2"}, billing.Methods[0].Versions())
}

func TestNewRootSkipsHiddenCategories(t *testing.T) {
	view := NewRoot(buildRoot())
	for _, c := range view.Categories() {
		assert.NotEqual(t, "admin", c.Name)
	}
}

func TestStats(t *testing.T) {
	view := NewRoot(buildRoot())
	assert.Equal(t, Stats{Versions: 2, Categories: 5, Methods: 6, Types: 1, References: 1}, view.Stats())
}

func TestNewRootNil(t *testing.T) {
	view := NewRoot(nil)
	assert.Empty(t, view.Versions())
	assert.Empty(t, view.Categories())
	assert.Equal(t, Stats{}, view.Stats())
	assert.Nil(t, view.Model())
}

func TestSummarize(t *testing.T) {
	s := NewRoot(buildRoot()).Summarize()

	require.Len(t, s.Versions, 2)
	assert.Equal(t, VersionSummary{Name: "v1", Methods: 6}, s.Versions[0])
	require.Len(t, s.Categories, 5)
	assert.Equal(t, "users", s.Categories[0].Name)
	assert.True(t, slices.EqualFunc(s.Categories[0].Methods, []MethodSummary{
		{Name: "create", Label: "create v1", Versions: []string{"v1", "v2"}},
		{Name: "list", Label: "list v1", Versions: []string{"v1", "v2"}},
	}, func(a, b MethodSummary) bool {
		return a.Name == b.Name && a.Label == b.Label && slices.Equal(a.Versions, b.Versions)
	}))
	assert.Equal(t, 6, s.Stats.Methods)
}
