// internal/pkg/dates/dates.go
package dates

import (
	"fmt"
	"time"
)

var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse accepts the date formats the dashboards send (RFC3339 from date-time
// pickers, bare dates from date inputs).
func Parse(value string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// ParseOrNow parses value, falling back to the current time when empty.
func ParseOrNow(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	return Parse(value)
}
