package backend

import (
	"time"
)

func FormatTs(ts int64) string {
	// ignores the user timezone
	return time.Unix(ts, 0).Format("_2.1.2006 15:04:05")
}

// parseBool parses "yes" and "no". Everything else is nil.
func parseBool(s string) *bool {
	var b bool
	switch s {
	case "yes":
		b = true
	case "no":
		b = false
	default:
		return nil
	}
	return &b
}
