package autocomplete

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// Params are the request inputs of a handler
type Params struct {
	Query   string            `validate:"max=255"`
	Filters map[string]string `validate:"max=16,dive,keys,min=1,max=64,endkeys,max=255"`
	Select  []string          `validate:"max=16,dive,min=1,max=128"`
}

// plan is a built query plus what is needed to render its rows
type plan struct {
	tx       *gorm.DB
	entity   *Entity
	searched []*schema.Field
	primary  *schema.Field
	paths    []*attributePath
}

// buildPlan turns a definition and the request params into a gorm query.
// Column names only ever come from the entity schema; every value is bound.
func buildPlan(db *gorm.DB, def *Definition, entity *Entity, params Params, defaultLimit int) (*plan, error) {
	sch := entity.Schema
	p := &plan{entity: entity, primary: sch.PrioritizedPrimaryField}

	for _, attr := range def.Attributes {
		field := lookupColumn(sch, attr)
		if field == nil {
			return nil, &ResolutionError{Entity: def.Entity, Reason: fmt.Sprintf("unknown attribute %q", attr)}
		}
		p.searched = append(p.searched, field)
	}
	if def.Multiple && p.primary == nil {
		return nil, &ResolutionError{Entity: def.Entity, Reason: "no primary key"}
	}

	tx := db.Model(entity.Model)

	term := strings.ToLower(params.Query)
	if def.Options.FoldAccents {
		term = foldAccents(term)
	}
	pattern := "%" + term + "%"

	var folds [][][2]string
	if db.Dialector.Name() == "sqlite" {
		folds = append(folds, sqliteCaseFolds)
	}
	if def.Options.FoldAccents {
		folds = append(folds, accentPairs)
	}

	matches := make([]clause.Expression, 0, len(p.searched))
	for _, field := range p.searched {
		matches = append(matches, matchExpr(column(sch, field), pattern, folds...))
	}
	tx = tx.Where(clause.Or(matches...))

	for _, key := range sortedKeys(def.Options.Conditions) {
		field := lookupColumn(sch, key)
		if field == nil {
			return nil, &ResolutionError{Entity: def.Entity, Reason: fmt.Sprintf("unknown condition column %q", key)}
		}
		tx = tx.Where(clause.Eq{Column: column(sch, field), Value: def.Options.Conditions[key]})
	}

	if def.Multiple {
		for _, key := range sortedKeys(params.Filters) {
			field := lookupColumn(sch, key)
			if field == nil {
				return nil, &BadRequestError{Param: "options", Reason: fmt.Sprintf("unknown column %q", key)}
			}
			value, err := coerce(field, params.Filters[key])
			if err != nil {
				return nil, &BadRequestError{Param: "options", Reason: fmt.Sprintf("column %q: %v", key, err)}
			}
			tx = tx.Where(clause.Eq{Column: column(sch, field), Value: value})
		}

		for _, raw := range params.Select {
			path, err := parsePath(raw, sch, db.NamingStrategy)
			if err != nil {
				return nil, err
			}
			p.paths = append(p.paths, path)
		}
	}

	if len(def.Options.Scopes) > 0 {
		tx = tx.Scopes(def.Options.Scopes...)
	}

	// selected columns are table-qualified so scopes may join other tables
	switch {
	case !def.Multiple:
		tx = tx.Clauses(clause.Select{Columns: []clause.Column{column(sch, p.searched[0])}})
	case len(p.paths) == 0:
		tx = tx.Clauses(clause.Select{Columns: selectColumns(sch, p.primary, p.searched)})
	default:
		// full rows so the foreign keys needed by the preloads are present
		tx = tx.Clauses(clause.Select{Columns: []clause.Column{{Table: sch.Table, Name: "*", Raw: true}}})
		for _, path := range p.paths {
			if preload := path.preload(); preload != "" {
				tx = tx.Preload(preload)
			}
		}
	}

	if def.Options.Order != "" {
		tx = tx.Order(def.Options.Order)
	} else {
		for _, field := range p.searched {
			tx = tx.Order(clause.OrderByColumn{Column: column(sch, field)})
		}
		// ties keep storage order
		if p.primary != nil {
			tx = tx.Order(clause.OrderByColumn{Column: column(sch, p.primary)})
		}
	}

	p.tx = tx.Limit(def.Options.limit(defaultLimit))
	return p, nil
}

// matchExpr builds LOWER(col) LIKE ?, wrapping the column in one REPLACE per fold pair
func matchExpr(col clause.Column, pattern string, folds ...[][2]string) clause.Expression {
	sql := "LOWER(?)"
	vars := []any{col}
	for _, pairs := range folds {
		for _, pair := range pairs {
			sql = "REPLACE(" + sql + ", ?, ?)"
			vars = append(vars, pair[0], pair[1])
		}
	}
	return clause.Expr{SQL: sql + " LIKE ?", Vars: append(vars, pattern)}
}

func lookupColumn(sch *schema.Schema, name string) *schema.Field {
	field := sch.LookUpField(strings.TrimSpace(name))
	if field == nil || field.DBName == "" {
		return nil
	}
	return field
}

func column(sch *schema.Schema, field *schema.Field) clause.Column {
	return clause.Column{Table: sch.Table, Name: field.DBName}
}

func selectColumns(sch *schema.Schema, primary *schema.Field, searched []*schema.Field) []clause.Column {
	columns := []clause.Column{column(sch, primary)}
	seen := map[string]bool{primary.DBName: true}
	for _, field := range searched {
		if !seen[field.DBName] {
			seen[field.DBName] = true
			columns = append(columns, column(sch, field))
		}
	}
	return columns
}

// coerce converts a request string to the column's type so comparisons work on every driver
func coerce(field *schema.Field, raw string) (any, error) {
	switch field.DataType {
	case schema.Bool:
		return strconv.ParseBool(raw)
	case schema.Int:
		return strconv.ParseInt(raw, 10, 64)
	case schema.Uint:
		return strconv.ParseUint(raw, 10, 64)
	case schema.Float:
		return strconv.ParseFloat(raw, 64)
	default:
		return raw, nil
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
