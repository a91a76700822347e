package module

// CoreModuleProvider defines the interface for providing core modules
type CoreModuleProvider interface {
	GetCoreModules(deps Dependencies) map[string]Module
}

// CoreOrchestrator handles the orchestration of core modules
type CoreOrchestrator struct {
	initializer *Initializer
	provider    CoreModuleProvider
}

// NewCoreOrchestrator creates a new core module orchestrator
func NewCoreOrchestrator(initializer *Initializer, provider CoreModuleProvider) *CoreOrchestrator {
	return &CoreOrchestrator{
		initializer: initializer,
		provider:    provider,
	}
}

// InitializeCoreModules initializes all core modules using the provider
func (co *CoreOrchestrator) InitializeCoreModules(deps Dependencies) ([]Module, error) {
	modules := co.provider.GetCoreModules(deps)
	if len(modules) == 0 {
		return []Module{}, nil
	}
	return co.initializer.Initialize(modules, deps), nil
}
