package module

import (
	"fmt"
	"sort"
	"sync"

	"autocomplete/core/config"
	"autocomplete/core/logger"
	"autocomplete/core/metrics"
	"autocomplete/core/router"

	"gorm.io/gorm"
)

// Module is a unit of functionality wired at startup. Modules may also implement
// Init() error, Migrate() error and Routes(*router.RouterGroup).
type Module interface {
	GetModels() []any
}

// DefaultModule gives modules a no-op implementation of the optional hooks
type DefaultModule struct{}

func (DefaultModule) Init() error      { return nil }
func (DefaultModule) Migrate() error   { return nil }
func (DefaultModule) GetModels() []any { return nil }

// Dependencies are handed to every module constructor
type Dependencies struct {
	DB      *gorm.DB
	Router  *router.RouterGroup
	Logger  logger.Logger
	Config  *config.Config
	Metrics *metrics.Collector
}

var (
	registryMu sync.Mutex
	registry   = map[string]Module{}
)

// RegisterModule records a module by name; names must be unique
func RegisterModule(name string, mod Module) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		return fmt.Errorf("module %s already registered", name)
	}
	registry[name] = mod
	return nil
}

// Initializer runs the lifecycle hooks of modules
type Initializer struct {
	logger logger.Logger
}

// NewInitializer creates an initializer
func NewInitializer(log logger.Logger) *Initializer {
	return &Initializer{logger: log}
}

// Initialize runs Init, Migrate and Routes for each module in name order.
// Modules that fail a hook are logged and skipped.
func (i *Initializer) Initialize(modules map[string]Module, deps Dependencies) []Module {
	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)

	var initialized []Module
	for _, name := range names {
		mod := modules[name]

		if err := RegisterModule(name, mod); err != nil {
			i.logger.Error("Failed to register module",
				logger.String("module", name),
				logger.String("error", err.Error()))
			continue
		}

		if initModule, ok := mod.(interface{ Init() error }); ok {
			if err := initModule.Init(); err != nil {
				i.logger.Error("Failed to initialize module",
					logger.String("module", name),
					logger.String("error", err.Error()))
				continue
			}
		}

		if migrator, ok := mod.(interface{ Migrate() error }); ok {
			if err := migrator.Migrate(); err != nil {
				i.logger.Error("Failed to migrate module",
					logger.String("module", name),
					logger.String("error", err.Error()))
				continue
			}
		}

		if routeModule, ok := mod.(interface{ Routes(*router.RouterGroup) }); ok && deps.Router != nil {
			routeModule.Routes(deps.Router)
		}

		initialized = append(initialized, mod)
	}

	return initialized
}
