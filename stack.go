package chartview

// Range is the half-open vertical interval (From, To] drawn by one stacked
// sub-value.
type Range struct {
	From, To float64
}

// Contains reports whether From < v <= To.
//
// The lower bound is open, so the bottom edge of the lowest negative range
// belongs to no range; closestStackIndex clamps such values onto it.
func (r Range) Contains(v float64) bool {
	return v > r.From && v <= r.To
}

// stackRanges fills out with the ranges of vals in their original order.
// Positive values stack upward from zero; negative values stack upward from
// -negativeSum, so the negative block ends at zero. A zero value produces a
// zero-width range at the current positive boundary. out must have
// len(vals) elements.
func stackRanges(vals []float64, negativeSum float64, out []Range) []Range {
	negRemain := -negativeSum
	posRemain := 0.0
	for i, v := range vals {
		if v < 0 {
			out[i] = Range{From: negRemain, To: negRemain - v}
			negRemain -= v
		} else {
			out[i] = Range{From: posRemain, To: posRemain + v}
			posRemain += v
		}
	}
	return out
}

// closestStackIndex returns the index of the range containing v. When no
// range contains it, v above the stack clamps to the highest range (the last
// one drawn when several end at the top) and anything else clamps to the
// lowest range.
func closestStackIndex(ranges []Range, v float64) int {
	if len(ranges) == 0 {
		return 0
	}
	lowest, highest := 0, 0
	for i, r := range ranges {
		if r.Contains(v) {
			return i
		}
		if r.From < ranges[lowest].From {
			lowest = i
		}
		if r.To >= ranges[highest].To {
			highest = i
		}
	}
	if v > ranges[highest].To {
		return highest
	}
	return lowest
}
