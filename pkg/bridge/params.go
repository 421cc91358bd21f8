package bridge

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"unicode/utf8"
)

// Validation bounds for the query surface.
const (
	// DefaultTTL is the cache lifetime in seconds when ttl is absent.
	DefaultTTL = 60
	MinTTL     = 0
	MaxTTL     = 600

	// DefaultLimit is the search result count when limit is absent.
	DefaultLimit = 20
	MinLimit     = 1
	MaxLimit     = 100

	// MaxQueryLength bounds the q parameter in runes.
	MaxQueryLength = 1000
)

// ToolsParams is the validated query surface of the tools endpoint.
type ToolsParams struct {
	// TTL is the clamped cache lifetime in seconds.
	TTL int
}

// SearchParams is the validated query surface of the search endpoint.
type SearchParams struct {
	// Query is the search term, 1 to 1000 runes.
	Query string

	// Limit is the clamped result count.
	Limit int

	// TTL is the clamped cache lifetime in seconds.
	TTL int
}

// ValidationError reports a query parameter the caller must fix. It maps to
// a 400 response; nothing is sent upstream when validation fails.
type ValidationError struct {
	// Param is the offending query parameter name.
	Param string

	// Detail is the client-facing description.
	Detail string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Detail
}

// ParseToolsParams normalizes the tools endpoint query. It cannot fail:
// every ttl input maps to a value in [0, 600].
func ParseToolsParams(values url.Values) ToolsParams {
	return ToolsParams{
		TTL: intParam(values.Get("ttl"), DefaultTTL, MinTTL, MaxTTL),
	}
}

// ParseSearchParams validates and normalizes the search endpoint query.
// q is the only parameter that can reject a request; limit and ttl always
// coerce to an in-range value.
func ParseSearchParams(values url.Values) (SearchParams, error) {
	q := values.Get("q")
	if q == "" {
		return SearchParams{}, &ValidationError{
			Param:  "q",
			Detail: "query parameter q is required",
		}
	}
	if utf8.RuneCountInString(q) > MaxQueryLength {
		return SearchParams{}, &ValidationError{
			Param:  "q",
			Detail: fmt.Sprintf("query parameter q must be at most %d characters", MaxQueryLength),
		}
	}

	return SearchParams{
		Query: q,
		Limit: intParam(values.Get("limit"), DefaultLimit, MinLimit, MaxLimit),
		TTL:   intParam(values.Get("ttl"), DefaultTTL, MinTTL, MaxTTL),
	}, nil
}

// intParam coerces a numeric string to an integer, truncating toward zero.
// Non-numeric and non-finite input falls back to the default rather than
// erroring. The result is clamped to [min, max]; clamping happens in float
// space so inputs beyond the int range land on the nearest bound instead of
// overflowing.
func intParam(raw string, def, min, max int) int {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		f = float64(def)
	}
	f = math.Trunc(f)

	if f < float64(min) {
		return min
	}
	if f > float64(max) {
		return max
	}
	return int(f)
}
