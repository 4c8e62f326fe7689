package utils

import (
	"encoding/json"
	"strconv"
	"time"
)

// DisplayDateLayout is the layout front-ends use to show flight
// dates. Minute precision, matching what the store guarantees.
const DisplayDateLayout = "02 Jan 2006 15:04"

// Date layouts accepted for stored flight dates. Records written by
// this store use RFC 3339; older files may carry zone-less ISO-8601
// text down to minute precision.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// CoerceInt normalizes an ID-like value to int. Stored records may
// carry IDs as JSON numbers (decoded as float64), json.Number, or
// strings left behind by earlier versions of the file format.
func CoerceInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// ParseRecordDate parses stored flight date text.
func ParseRecordDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatRecordDate renders a flight date for storage.
func FormatRecordDate(t time.Time) string {
	return t.Format(time.RFC3339)
}
