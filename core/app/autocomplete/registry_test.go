package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestRouteName(t *testing.T) {
	assert.Equal(t, "autocomplete_post_title", RouteName("post", "title"))
	assert.Equal(t, "autocomplete_employee_first_name_last_name", RouteName("employee", "first_name", "last_name"))
}

func TestRegisterComposesNames(t *testing.T) {
	registry := NewRegistry(nil)

	single, err := registry.Register("post", "title")
	require.NoError(t, err)
	assert.Equal(t, "autocomplete_post_title", single.Name)
	assert.False(t, single.Multiple)

	multi, err := registry.RegisterMultiple("employee", []string{"first_name", "last_name"})
	require.NoError(t, err)
	assert.Equal(t, "autocomplete_employee_first_name_last_name", multi.Name)
	assert.True(t, multi.Multiple)

	assert.Equal(t, []string{"autocomplete_employee_first_name_last_name", "autocomplete_post_title"}, registry.Names())

	got, ok := registry.Get("autocomplete_post_title")
	require.True(t, ok)
	assert.Same(t, single, got)
}

func TestRegisterDefersEntityChecks(t *testing.T) {
	registry := NewRegistry(NewCatalog())

	_, err := registry.Register("no_such_entity", "no_such_column")
	assert.NoError(t, err)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	registry := NewRegistry(nil)

	_, err := registry.Register("post", "title")
	require.NoError(t, err)
	_, err = registry.Register("post", "title")
	assert.ErrorContains(t, err, "already registered")

	_, err = registry.RegisterMultiple("post", nil)
	assert.Error(t, err)

	_, err = registry.Register("", "title")
	assert.Error(t, err)

	_, err = registry.Register("post", " ")
	assert.Error(t, err)

	_, err = registry.Register("post", "body", Options{Limit: -1})
	assert.ErrorContains(t, err, "invalid options")
}

func TestOptionsLimit(t *testing.T) {
	assert.Equal(t, 15, Options{Limit: 15}.limit(20))
	assert.Equal(t, 20, Options{}.limit(20))
	assert.Equal(t, DefaultLimit, Options{}.limit(0))
}

func TestCatalogResolve(t *testing.T) {
	catalog := newTestCatalog()
	namer := schema.NamingStrategy{}

	entity, err := catalog.Resolve("employees", namer)
	require.NoError(t, err)
	assert.Equal(t, "employee", entity.Name)
	assert.Equal(t, "employees", entity.Schema.Table)

	entity, err = catalog.Resolve(" Post ", namer)
	require.NoError(t, err)
	assert.Equal(t, "posts", entity.Schema.Table)

	_, err = catalog.Resolve("widget", namer)
	var resolution *ResolutionError
	assert.ErrorAs(t, err, &resolution)
}

type BlogPost struct {
	Id    uint
	Title string
}

func TestCatalogDerivesNames(t *testing.T) {
	catalog := NewCatalog()
	catalog.Add("", &BlogPost{})

	assert.Equal(t, []string{"blog_post"}, catalog.Names())
	entity, err := catalog.Resolve("blog_posts", schema.NamingStrategy{})
	require.NoError(t, err)
	assert.Equal(t, "blog_posts", entity.Schema.Table)
}
