package autocomplete

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"
	"time"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// formatValue renders a column value for a plain text row. Absent values render empty.
func formatValue(val any) string {
	if val == nil {
		return ""
	}

	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return formatValue(rv.Elem().Interface())
	}

	switch v := val.(type) {
	case string:
		return lineBreaks.Replace(v)
	case []byte:
		return lineBreaks.Replace(string(v))
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(time.RFC3339)
	case driver.Valuer:
		dv, err := v.Value()
		if err != nil || dv == nil {
			return ""
		}
		return formatValue(dv)
	default:
		return lineBreaks.Replace(fmt.Sprintf("%v", v))
	}
}
