package autocomplete

import (
	"gorm.io/gorm"
)

// DefaultLimit is used when neither the handler nor the service sets a limit
const DefaultLimit = 10

// Options tune a registered handler
type Options struct {
	// Limit caps the number of rows; zero means the service default
	Limit int `validate:"gte=0,lte=1000"`

	// Order replaces the default ascending order on the searched columns.
	// It is configuration, never request input.
	Order string `validate:"max=255"`

	// Conditions are column/value equality filters applied to every request
	Conditions map[string]any `validate:"max=32"`

	// Scopes are applied to the query as-is
	Scopes []func(*gorm.DB) *gorm.DB

	// FoldAccents makes matching insensitive to common accented vowels
	FoldAccents bool
}

func (o Options) limit(fallback int) int {
	if o.Limit > 0 {
		return o.Limit
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultLimit
}
