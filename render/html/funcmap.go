package html

import (
	"fmt"
	"html/template"
	"time"

	"github.com/sonnes/lekhak/core"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatTime":   formatTime,
		"formatNumber": formatNumber,
		"relativeTime": core.RelativeTime,
	}
}

// formatTime accepts time.Time or *time.Time and formats it for display.
// Zero and nil values render as the empty string.
func formatTime(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006 3:04 PM")
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006 3:04 PM")
	default:
		return ""
	}
}

// formatNumber renders an int with thousands separators.
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}
