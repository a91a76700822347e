package app

import (
	"autocomplete/app/models"
	"autocomplete/app/posts"
	"autocomplete/app/staff"
	"autocomplete/core/app/autocomplete"
	"autocomplete/core/module"
)

// AppModules implements module.AppModuleProvider
type AppModules struct{}

// NewAppModules creates the app module provider
func NewAppModules() *AppModules {
	return &AppModules{}
}

// GetAppModules returns the application modules to initialize
func (am *AppModules) GetAppModules(deps module.Dependencies) map[string]module.Module {
	return map[string]module.Module{
		"posts": posts.Init(deps),
		"staff": staff.Init(deps),
	}
}

// GetAutocompleteRegistry declares the entities that can be searched and the
// autocomplete handlers mounted under /api.
func GetAutocompleteRegistry() *autocomplete.Registry {
	catalog := autocomplete.NewCatalog()
	catalog.Add("post", &models.Post{})
	catalog.Add("employee", &models.Employee{})
	catalog.Add("department", &models.Department{})

	registry := autocomplete.NewRegistry(catalog)

	mustRegister(registry.Register("post", "title", autocomplete.Options{
		Conditions: map[string]any{"published": true},
	}))
	mustRegister(registry.Register("department", "name"))
	mustRegister(registry.Register("employee", "email", autocomplete.Options{
		Limit:      15,
		Conditions: map[string]any{"active": true},
	}))
	mustRegister(registry.RegisterMultiple("employee", []string{"first_name", "last_name"}, autocomplete.Options{
		FoldAccents: true,
	}))

	return registry
}

func mustRegister(_ *autocomplete.Definition, err error) {
	if err != nil {
		panic(err)
	}
}
