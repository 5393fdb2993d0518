package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawUsageRecord is a usage row as delivered by a data source, before any
// numeric coercion. Usage fields may be numbers, numeric strings, raw
// bytes or nil depending on the driver.
type RawUsageRecord struct {
	ID          any
	ClientID    any
	Date        any
	Kit1Usage   any
	Kit2Usage   any
	TotalUsage  any
	ClientName  string
	ClientEmail string
}

// Normalize converts the raw row into a UsageRecord. This is the single
// place where missing or malformed usage values are replaced by 0.
func (r RawUsageRecord) Normalize() UsageRecord {
	return UsageRecord{
		ID:          CoerceString(r.ID),
		ClientID:    CoerceString(r.ClientID),
		Date:        NormalizeDate(r.Date),
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		Kit1Usage:   CoerceUsage(r.Kit1Usage),
		Kit2Usage:   CoerceUsage(r.Kit2Usage),
		TotalUsage:  CoerceUsage(r.TotalUsage),
	}
}

// CoerceUsage turns a loosely typed usage value into GB. Missing, NaN,
// infinite and non-numeric values become 0.
func CoerceUsage(v any) float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case []byte:
		return CoerceUsage(string(x))
	case *float64:
		if x == nil {
			return 0
		}
		f = *x
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NormalizeDate reduces a date or timestamp value to "YYYY-MM-DD".
// Unrecognised strings are returned unchanged.
func NormalizeDate(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.UTC().Format(DateLayout)
	case []byte:
		return NormalizeDate(string(x))
	case string:
		s := strings.TrimSpace(x)
		if len(s) >= len(DateLayout) {
			if _, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
				return s[:len(DateLayout)]
			}
		}
		return s
	default:
		return CoerceString(v)
	}
}

// CoerceString renders an identifier column value as a string.
func CoerceString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		return ""
	}
}
