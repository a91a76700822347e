package autocomplete

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"gorm.io/gorm/schema"
)

var segmentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// attributePath is a parsed dotted path such as department.name: a chain of
// single-valued associations followed by a field of the last one.
type attributePath struct {
	raw       string
	relations []*schema.Relationship
	field     *schema.Field
}

// parsePath validates raw against sch and the schemas reachable from it
func parsePath(raw string, sch *schema.Schema, namer schema.Namer) (*attributePath, error) {
	segments := strings.Split(raw, ".")
	for _, seg := range segments {
		if !segmentPattern.MatchString(seg) {
			return nil, &BadRequestError{Param: "select", Reason: fmt.Sprintf("malformed path %q", raw)}
		}
	}

	path := &attributePath{raw: raw}
	current := sch
	for _, seg := range segments[:len(segments)-1] {
		rel := findRelation(current, seg, namer)
		if rel == nil {
			return nil, &BadRequestError{Param: "select", Reason: fmt.Sprintf("%s has no association %q", current.Name, seg)}
		}
		if rel.Type != schema.BelongsTo && rel.Type != schema.HasOne {
			return nil, &BadRequestError{Param: "select", Reason: fmt.Sprintf("association %q is not single-valued", seg)}
		}
		path.relations = append(path.relations, rel)
		current = rel.FieldSchema
	}

	last := segments[len(segments)-1]
	field := current.LookUpField(last)
	if field == nil || field.DBName == "" || !field.Readable {
		return nil, &BadRequestError{Param: "select", Reason: fmt.Sprintf("%s has no attribute %q", current.Name, last)}
	}
	path.field = field

	return path, nil
}

func findRelation(sch *schema.Schema, segment string, namer schema.Namer) *schema.Relationship {
	if rel, ok := sch.Relationships.Relations[segment]; ok {
		return rel
	}
	for name, rel := range sch.Relationships.Relations {
		if namer.ColumnName("", name) == segment || strings.EqualFold(name, segment) {
			return rel
		}
	}
	return nil
}

// preload is the gorm preload path for the associations, "" when there are none
func (p *attributePath) preload() string {
	names := make([]string, len(p.relations))
	for i, rel := range p.relations {
		names[i] = rel.Name
	}
	return strings.Join(names, ".")
}

// resolve walks record along the path. A missing association yields "".
func (p *attributePath) resolve(ctx context.Context, record reflect.Value) string {
	current := record
	for _, rel := range p.relations {
		next := rel.Field.ReflectValueOf(ctx, current)
		if next.Kind() == reflect.Pointer {
			if next.IsNil() {
				return ""
			}
			next = next.Elem()
		}
		if next.Kind() != reflect.Struct {
			return ""
		}
		if pk := rel.FieldSchema.PrioritizedPrimaryField; pk != nil {
			if _, zero := pk.ValueOf(ctx, next); zero {
				return ""
			}
		}
		current = next
	}

	value, _ := p.field.ValueOf(ctx, current)
	return formatValue(value)
}
