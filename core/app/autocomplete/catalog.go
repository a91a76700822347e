package autocomplete

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gertd/go-pluralize"
	"gorm.io/gorm/schema"
)

// Entity is a resolved model: the registered value and its parsed schema
type Entity struct {
	Name   string
	Model  any
	Schema *schema.Schema
}

// Catalog maps entity names to gorm models
type Catalog struct {
	mu     sync.RWMutex
	models map[string]any
	cache  *sync.Map
	plural *pluralize.Client
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		models: make(map[string]any),
		cache:  &sync.Map{},
		plural: pluralize.NewClient(),
	}
}

// Add registers model under name. An empty name is derived from the struct
// name, so &models.BlogPost{} becomes "blog_post".
func (c *Catalog) Add(name string, model any) {
	if name == "" {
		name = schema.NamingStrategy{}.ColumnName("", reflect.Indirect(reflect.ValueOf(model)).Type().Name())
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.models[c.normalize(name)] = model
}

// Names returns the registered entity names
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.models))
	for name := range c.models {
		names = append(names, name)
	}
	return names
}

// Resolve parses the schema of the named entity. Plural names resolve to
// their singular entity.
func (c *Catalog) Resolve(name string, namer schema.Namer) (*Entity, error) {
	key := c.normalize(name)

	c.mu.RLock()
	model, ok := c.models[key]
	c.mu.RUnlock()
	if !ok {
		return nil, &ResolutionError{Entity: name, Reason: "unknown entity"}
	}

	sch, err := schema.Parse(model, c.cache, namer)
	if err != nil {
		return nil, &ResolutionError{Entity: name, Reason: err.Error()}
	}

	return &Entity{Name: key, Model: model, Schema: sch}, nil
}

func (c *Catalog) normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return c.plural.Singular(name)
}
