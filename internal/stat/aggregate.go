package stat

// SumAndAvg is a result of reducing a collection of statistics.
type SumAndAvg[P Provenance, T Number] struct {
	Total   Stat[P, T]
	Average Stat[P, float64]
}

// Sum returns sum of all values. Sum of empty slice is 0.
func Sum[P Provenance, T Number](values []Stat[P, T]) Stat[P, T] {
	var total Stat[P, T]
	for _, v := range values {
		total = Add(total, v)
	}

	return total
}

// Aggregate sums values and divides the total by denominator.
// Average is 0 when denominator is not positive.
func Aggregate[P Provenance, T Number](values []Stat[P, T], denominator int) SumAndAvg[P, T] {
	total := Sum(values)
	return SumAndAvg[P, T]{
		Total:   total,
		Average: Average(total, denominator),
	}
}

// Average divides total by denominator. Returns 0 when denominator is not positive.
func Average[P Provenance, T Number](total Stat[P, T], denominator int) Stat[P, float64] {
	if denominator <= 0 {
		return Stat[P, float64]{}
	}

	return Map(total, func(t T) float64 {
		return float64(t) / float64(denominator)
	})
}

// Mean returns mean of all samples in a list statistic, 0 for empty list.
func Mean[P Provenance, T Number](samples Stat[P, []T]) Stat[P, T] {
	return Map(samples, meanOf[T])
}

// MeanOf returns mean of given statistics, 0 for empty slice.
func MeanOf[P Provenance, T Number](values []Stat[P, T]) Stat[P, T] {
	vs := make([]T, 0, len(values))
	for _, v := range values {
		vs = append(vs, v.value)
	}

	return Stat[P, T]{value: meanOf(vs)}
}

func meanOf[T Number](vs []T) T {
	if len(vs) == 0 {
		return 0
	}

	var sum float64
	for _, v := range vs {
		sum += float64(v)
	}

	return T(sum / float64(len(vs)))
}
