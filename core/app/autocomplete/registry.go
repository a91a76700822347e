package autocomplete

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// RoutePrefix starts every generated handler name
const RoutePrefix = "autocomplete"

// Definition describes one registered handler
type Definition struct {
	Name       string
	Entity     string
	Attributes []string
	Multiple   bool
	Options    Options
}

// Registry holds the autocomplete handlers keyed by route name. It is built
// at startup and read-only once the routes are mounted.
type Registry struct {
	mu          sync.RWMutex
	catalog     *Catalog
	definitions map[string]*Definition
	validate    *validator.Validate
}

// NewRegistry creates a registry resolving entities through catalog
func NewRegistry(catalog *Catalog) *Registry {
	if catalog == nil {
		catalog = NewCatalog()
	}
	return &Registry{
		catalog:     catalog,
		definitions: make(map[string]*Definition),
		validate:    validator.New(),
	}
}

// Catalog returns the entity catalog
func (r *Registry) Catalog() *Catalog {
	return r.catalog
}

// Register adds a single attribute handler named autocomplete_<entity>_<attribute>.
// The entity and attribute are only checked when the handler runs.
//
//	registry.Register("post", "title", autocomplete.Options{Limit: 15, Order: "created_at DESC"})
func (r *Registry) Register(entity, attribute string, opts ...Options) (*Definition, error) {
	return r.add(entity, []string{attribute}, false, opts)
}

// RegisterMultiple adds a handler matching any of attributes, named
// autocomplete_<entity>_<attr1>_<attr2>...
func (r *Registry) RegisterMultiple(entity string, attributes []string, opts ...Options) (*Definition, error) {
	return r.add(entity, attributes, true, opts)
}

func (r *Registry) add(entity string, attributes []string, multiple bool, opts []Options) (*Definition, error) {
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return nil, fmt.Errorf("autocomplete: entity name is required")
	}
	if len(attributes) == 0 {
		return nil, fmt.Errorf("autocomplete: %s needs at least one attribute", entity)
	}
	for _, attr := range attributes {
		if strings.TrimSpace(attr) == "" {
			return nil, fmt.Errorf("autocomplete: %s has an empty attribute name", entity)
		}
	}

	var options Options
	if len(opts) > 0 {
		options = opts[0]
	}
	if err := r.validate.Struct(options); err != nil {
		return nil, fmt.Errorf("autocomplete: invalid options for %s: %w", entity, err)
	}

	def := &Definition{
		Name:       RouteName(entity, attributes...),
		Entity:     entity,
		Attributes: append([]string(nil), attributes...),
		Multiple:   multiple,
		Options:    options,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.definitions[def.Name]; exists {
		return nil, fmt.Errorf("autocomplete: handler %s already registered", def.Name)
	}
	r.definitions[def.Name] = def
	return def, nil
}

// Get returns a handler definition by route name
func (r *Registry) Get(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[name]
	return def, ok
}

// Names returns the registered route names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RouteName composes the conventional handler name
func RouteName(entity string, attributes ...string) string {
	parts := append([]string{RoutePrefix, entity}, attributes...)
	return strings.Join(parts, "_")
}
