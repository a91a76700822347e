package autocomplete

import (
	"autocomplete/core/logger"
	"autocomplete/core/module"
	"autocomplete/core/router"

	"gorm.io/gorm"
)

type Module struct {
	module.DefaultModule
	DB         *gorm.DB
	Service    *AutocompleteService
	Controller *AutocompleteController
	Registry   *Registry
	logger     logger.Logger
}

// Init creates the autocomplete module. Pass the registry built in app/init.go;
// nil mounts no handlers.
func Init(deps module.Dependencies, registry *Registry) module.Module {
	if registry == nil {
		registry = NewRegistry(nil)
	}

	limit := DefaultLimit
	if deps.Config != nil && deps.Config.AutocompleteLimit > 0 {
		limit = deps.Config.AutocompleteLimit
	}

	service := NewAutocompleteService(deps.DB, deps.Logger, registry, deps.Metrics, limit)
	controller := NewAutocompleteController(service, deps.Logger)

	return &Module{
		DB:         deps.DB,
		Service:    service,
		Controller: controller,
		Registry:   registry,
		logger:     deps.Logger,
	}
}

// Routes registers the module routes
func (m *Module) Routes(router *router.RouterGroup) {
	m.Controller.Routes(router)
	for _, name := range m.Registry.Names() {
		m.logger.Info("Autocomplete handler mounted", logger.String("route", router.Prefix()+"/"+name))
	}
}
