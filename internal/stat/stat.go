// Package stat provides statistic values tagged with the completeness of the source they were computed from.
//
// A statistic computed from a retention limited feed (GitHub's events API returns only recent events)
// is Bounded. A statistic computed from a feed with complete history is Unbounded.
// The tag is a type parameter, so mixing both kinds in one computation doesn't compile.
package stat

import (
	"fmt"
	"strconv"
	"time"
)

// Bounded marks statistics computed from a source with a retention limit.
type Bounded struct{}

// Unbounded marks statistics computed from a source with complete history.
type Unbounded struct{}

func (Bounded) bounded() bool   { return true }
func (Unbounded) bounded() bool { return false }

// Provenance is satisfied only by Bounded and Unbounded.
type Provenance interface {
	Bounded | Unbounded
	bounded() bool
}

// Number lists payload types supporting arithmetic.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Stat wraps a value of type T computed from a source of provenance P.
type Stat[P Provenance, T any] struct {
	value T
}

// New creates a statistic with given value.
func New[P Provenance, T any](value T) Stat[P, T] {
	return Stat[P, T]{value: value}
}

// Value returns wrapped value.
func (s Stat[P, T]) Value() T {
	return s.value
}

// IsBounded tells if statistic comes from a retention limited source.
// Depends only on the type, never on the value.
func (s Stat[P, T]) IsBounded() bool {
	var p P
	return p.bounded()
}

// String returns value as plain decimal text. Durations are printed in seconds.
// Other non numeric payloads use their default format.
func (s Stat[P, T]) String() string {
	switch v := any(s.value).(type) {
	case time.Duration:
		return strconv.FormatFloat(v.Seconds(), 'f', -1, 64)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

// Map transforms the value, keeping provenance.
func Map[P Provenance, T, U any](s Stat[P, T], f func(T) U) Stat[P, U] {
	return Stat[P, U]{value: f(s.value)}
}

// Zip combines two statistics of the same provenance.
func Zip[P Provenance, T, U, V any](a Stat[P, T], b Stat[P, U], f func(T, U) V) Stat[P, V] {
	return Stat[P, V]{value: f(a.value, b.value)}
}

// Add returns a + b.
func Add[P Provenance, T Number](a, b Stat[P, T]) Stat[P, T] {
	return Zip(a, b, func(x, y T) T { return x + y })
}

// Sub returns a - b.
func Sub[P Provenance, T Number](a, b Stat[P, T]) Stat[P, T] {
	return Zip(a, b, func(x, y T) T { return x - y })
}

// Div returns a / b. Integer payloads use integer division.
// Division by zero yields 0.
func Div[P Provenance, T Number](a, b Stat[P, T]) Stat[P, T] {
	return Zip(a, b, div[T])
}

// AddValue adds plain value v to the statistic.
func AddValue[P Provenance, T Number](s Stat[P, T], v T) Stat[P, T] {
	return Map(s, func(x T) T { return x + v })
}

// DivValue divides the statistic by plain value v. Division by zero yields 0.
func DivValue[P Provenance, T Number](s Stat[P, T], v T) Stat[P, T] {
	return Map(s, func(x T) T { return div(x, v) })
}

func div[T Number](x, y T) T {
	if y == 0 {
		return 0
	}
	return x / y
}

// Concat joins two list statistics. Result never shares memory with arguments.
func Concat[P Provenance, E any](a, b Stat[P, []E]) Stat[P, []E] {
	return Zip(a, b, func(x, y []E) []E {
		out := make([]E, 0, len(x)+len(y))
		out = append(out, x...)
		return append(out, y...)
	})
}

// Len returns number of elements of a list statistic.
func Len[P Provenance, E any](s Stat[P, []E]) int {
	return len(s.value)
}
