package book

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Optional records whether a JSON field was supplied at all. A supplied
// null is Present with a nil Value.
type Optional[T any] struct {
	Present bool
	Value   *T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: &v}
}

// Null returns a present Optional that clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true}
}

// IsNull reports whether the field was supplied as null.
func (o Optional[T]) IsNull() bool {
	return o.Present && o.Value == nil
}

// Ptr returns a copy of the value, or nil when absent or null.
func (o Optional[T]) Ptr() *T {
	if o.Value == nil {
		return nil
	}
	v := *o.Value
	return &v
}

// ValueOr returns the value, or def when absent or null.
func (o Optional[T]) ValueOr(def T) T {
	if o.Value == nil {
		return def
	}
	return *o.Value
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// lenientInt accepts 1965, 1965.0 and "1965".
type lenientInt int

func (n *lenientInt) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = strings.TrimSpace(unquoted)
	}

	if i, err := strconv.Atoi(s); err == nil {
		*n = lenientInt(i)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("cannot use %s as an integer", data)
	}
	*n = lenientInt(f)
	return nil
}
