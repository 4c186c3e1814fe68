package chartview

// arena is a preallocated flat buffer for a single hot path (transformed
// point generation, stacked range building). Slices handed out by alloc stay
// valid until the next reset; reset only rewinds the cursor, so steady-state
// use does not allocate.
type arena[T any] struct {
	buf    []T
	cursor int
}

// reset rewinds the arena. Previously returned slices must not be used
// afterwards.
func (a *arena[T]) reset() {
	a.cursor = 0
}

// alloc returns a zeroed slice of n elements. The backing buffer grows
// (doubling) only when the current capacity is exceeded.
func (a *arena[T]) alloc(n int) []T {
	if n <= 0 {
		return nil
	}
	need := a.cursor + n
	if need > len(a.buf) {
		size := 2 * len(a.buf)
		if size < need {
			size = need
		}
		grown := make([]T, size)
		copy(grown, a.buf[:a.cursor])
		a.buf = grown
	}
	s := a.buf[a.cursor:need:need]
	clear(s)
	a.cursor = need
	return s
}

// used returns the number of elements handed out since the last reset.
func (a *arena[T]) used() int {
	return a.cursor
}
