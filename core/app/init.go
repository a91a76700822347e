package app

import (
	"autocomplete/core/app/autocomplete"
	"autocomplete/core/module"
)

// CoreModules implements module.CoreModuleProvider interface
type CoreModules struct {
	AutocompleteRegistry *autocomplete.Registry
}

// GetCoreModules returns the list of core modules to initialize
func (cm *CoreModules) GetCoreModules(deps module.Dependencies) map[string]module.Module {
	modules := make(map[string]module.Module)

	// Registry may be nil, the module then mounts no handlers
	modules["autocomplete"] = autocomplete.Init(deps, cm.AutocompleteRegistry)

	return modules
}

// NewCoreModules creates a new core modules provider
func NewCoreModules(registry *autocomplete.Registry) *CoreModules {
	return &CoreModules{
		AutocompleteRegistry: registry,
	}
}
