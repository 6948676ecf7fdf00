package search

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

const (
	// DefaultLimit is used when a search does not ask for a row count.
	DefaultLimit = 10
	// MaxLimit is the largest row count a search may ask for.
	MaxLimit = 100
)

var (
	errNotFinite  = errors.New("must be a finite number")
	errLimitRange = fmt.Errorf("must be between 1 and %d", MaxLimit)
)

// Query keys recognized by ParseCriteria. Anything else is ignored.
const (
	KeyCity                 = "city"
	KeyOwnerID              = "owner_id"
	KeyMinimumPricePerNight = "minimum_price_per_night"
	KeyMaximumPricePerNight = "maximum_price_per_night"
	KeyMinimumRating        = "minimum_rating"
	KeyLimit                = "limit"
)

// SearchCriteria is an optional combination of property filters.
// A nil field places no constraint on the result.
type SearchCriteria struct {
	City                 *string
	OwnerID              *int64
	MinimumPricePerNight *float64
	MaximumPricePerNight *float64
	MinimumRating        *float64
	Limit                int
}

// EffectiveLimit returns the row limit applied to the search, clamped to
// MaxLimit.
func (c SearchCriteria) EffectiveLimit() int {
	switch {
	case c.Limit <= 0:
		return DefaultLimit
	case c.Limit > MaxLimit:
		return MaxLimit
	}
	return c.Limit
}

// InvalidCriterionError reports a query value that could not be coerced to
// the type its key requires.
type InvalidCriterionError struct {
	Key   string
	Value string
	Err   error
}

func (e *InvalidCriterionError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Key, e.Err)
}

func (e *InvalidCriterionError) Unwrap() error {
	return e.Err
}

// ParseCriteria reads search criteria from untyped query string values.
// Blank values count as absent.
func ParseCriteria(values map[string]string) (SearchCriteria, error) {
	var c SearchCriteria

	if v, ok := lookup(values, KeyCity); ok {
		c.City = &v
	}

	if v, ok := lookup(values, KeyOwnerID); ok {
		id, err := ParseInt(v)
		if err != nil {
			return SearchCriteria{}, &InvalidCriterionError{Key: KeyOwnerID, Value: v, Err: err}
		}
		c.OwnerID = &id
	}

	floats := []struct {
		key string
		dst **float64
	}{
		{KeyMinimumPricePerNight, &c.MinimumPricePerNight},
		{KeyMaximumPricePerNight, &c.MaximumPricePerNight},
		{KeyMinimumRating, &c.MinimumRating},
	}
	for _, f := range floats {
		v, ok := lookup(values, f.key)
		if !ok {
			continue
		}
		n, err := cast.ToFloat64E(v)
		if err == nil && (math.IsNaN(n) || math.IsInf(n, 0)) {
			err = errNotFinite
		}
		if err != nil {
			return SearchCriteria{}, &InvalidCriterionError{Key: f.key, Value: v, Err: err}
		}
		*f.dst = &n
	}

	if v, ok := lookup(values, KeyLimit); ok {
		limit, err := ParseLimit(v)
		if err != nil {
			return SearchCriteria{}, &InvalidCriterionError{Key: KeyLimit, Value: v, Err: err}
		}
		c.Limit = limit
	}

	return c, nil
}

// ParseInt reads a base 10 integer. Leading zeros do not switch the base,
// so "010" is ten.
func ParseInt(v string) (int64, error) {
	return strconv.ParseInt(v, 10, 64)
}

// ParseLimit reads a row count between 1 and MaxLimit.
func ParseLimit(v string) (int, error) {
	n, err := ParseInt(v)
	if err != nil {
		return 0, err
	}
	if n <= 0 || n > MaxLimit {
		return 0, errLimitRange
	}
	return int(n), nil
}

func lookup(values map[string]string, key string) (string, bool) {
	v := strings.TrimSpace(values[key])
	return v, v != ""
}
