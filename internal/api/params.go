package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the wire format Teamwork expects for date parameters.
const dateLayout = "20060102"

// Params holds request parameters keyed by their wire name.
// Values may be scalars, slices of scalars, or dates (time.Time / *time.Time).
type Params map[string]any

// FormatDate formats t as YYYYMMDD in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// coerceParams returns a copy of params with every date value replaced by
// its FormatDate string. Other values pass through unchanged.
func coerceParams(params Params) Params {
	if len(params) == 0 {
		return nil
	}
	out := make(Params, len(params))
	for key, value := range params {
		switch v := value.(type) {
		case time.Time:
			out[key] = FormatDate(v)
		case *time.Time:
			if v == nil {
				out[key] = nil
				continue
			}
			out[key] = FormatDate(*v)
		default:
			out[key] = value
		}
	}
	return out
}

// encodeQuery renders params as a URL query string. Nil values are skipped;
// slices are joined with commas, which is how Teamwork takes ID lists.
func encodeQuery(params Params) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for key, value := range params {
		if value == nil {
			continue
		}
		values.Set(key, paramString(value))
	}
	return values.Encode()
}

func paramString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case []string:
		return strings.Join(v, ",")
	case []int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ",")
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = paramString(item)
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
