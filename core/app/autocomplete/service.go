package autocomplete

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"autocomplete/core/logger"
	"autocomplete/core/metrics"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type AutocompleteService struct {
	DB           *gorm.DB
	Logger       logger.Logger
	Registry     *Registry
	Metrics      *metrics.Collector
	DefaultLimit int

	validate *validator.Validate
}

func NewAutocompleteService(db *gorm.DB, log logger.Logger, registry *Registry, collector *metrics.Collector, defaultLimit int) *AutocompleteService {
	if registry == nil {
		registry = NewRegistry(nil)
	}
	return &AutocompleteService{
		DB:           db,
		Logger:       log,
		Registry:     registry,
		Metrics:      collector,
		DefaultLimit: defaultLimit,
		validate:     validator.New(),
	}
}

// Complete runs the named handler and returns one formatted line per matched record
func (s *AutocompleteService) Complete(ctx context.Context, name string, params Params) ([]string, error) {
	def, ok := s.Registry.Get(name)
	if !ok {
		return nil, &ResolutionError{Entity: name, Reason: "no such autocomplete handler"}
	}

	if err := s.validate.Struct(params); err != nil {
		return nil, paramError(err)
	}

	entity, err := s.Registry.Catalog().Resolve(def.Entity, s.DB.NamingStrategy)
	if err != nil {
		return nil, err
	}

	p, err := buildPlan(s.DB.WithContext(ctx), def, entity, params, s.DefaultLimit)
	if err != nil {
		return nil, err
	}

	records := reflect.New(reflect.SliceOf(entity.Schema.ModelType))
	if err := p.tx.Find(records.Interface()).Error; err != nil {
		return nil, &DataAccessError{Err: fmt.Errorf("%s: %w", def.Name, err)}
	}

	rows := records.Elem()
	lines := make([]string, 0, rows.Len())
	for i := 0; i < rows.Len(); i++ {
		if def.Multiple {
			lines = append(lines, p.multiLine(ctx, rows.Index(i)))
		} else {
			lines = append(lines, p.singleLine(ctx, rows.Index(i)))
		}
	}

	s.Metrics.ObserveRows(def.Name, len(lines))
	return lines, nil
}

// Render joins result lines into the plain text body the widget expects
func Render(lines []string) string {
	return strings.Join(lines, "\n")
}

func (p *plan) singleLine(ctx context.Context, record reflect.Value) string {
	value, _ := p.searched[0].ValueOf(ctx, record)
	return formatValue(value)
}

// multiLine renders "<searched values joined by space>|<id>[|<derived>|<derived>...]"
func (p *plan) multiLine(ctx context.Context, record reflect.Value) string {
	values := make([]string, 0, len(p.searched))
	for _, field := range p.searched {
		if field == p.primary {
			continue
		}
		value, _ := field.ValueOf(ctx, record)
		values = append(values, formatValue(value))
	}

	id, _ := p.primary.ValueOf(ctx, record)
	line := strings.Join(values, " ") + "|" + formatValue(id)

	if len(p.paths) > 0 {
		derived := make([]string, len(p.paths))
		for i, path := range p.paths {
			derived[i] = path.resolve(ctx, record)
		}
		line += "|" + strings.Join(derived, "|")
	}
	return line
}

var paramNames = map[string]string{"Query": "q", "Filters": "options", "Select": "select"}

func paramError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].StructField()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		return &BadRequestError{Param: paramNames[field], Reason: verrs[0].Error()}
	}
	return &BadRequestError{Param: "request", Reason: err.Error()}
}
