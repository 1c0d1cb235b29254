package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FieldError is a single request validation failure, carrying enough
// detail to build the wire-level error entry (path + message).
type FieldError struct {
	Field   string
	Message string
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// Dedupe keeps the first message per field, preserving order.
func (v ValidationErrors) Dedupe() ValidationErrors {
	seen := make(map[string]bool, len(v))
	out := make(ValidationErrors, 0, len(v))
	for _, err := range v {
		if seen[err.Field] {
			continue
		}
		seen[err.Field] = true
		out = append(out, err)
	}
	return out
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// Date validation, "YYYY-MM-DD"
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00+07:00"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}

// IsValidLatitude reports whether lat is inside the WGS84 range.
func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// IsValidLongitude reports whether lon is inside the WGS84 range.
func IsValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

// Itoa converts an integer to a string.
func Itoa(i int) string {
	return strconv.Itoa(i)
}

var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// IsValidUUID accepts canonical RFC 4122 text form, any version.
func IsValidUUID(id string) bool {
	return uuidRegex.MatchString(strings.ToLower(id))
}
