package chartview

import "math"

// Entry is one data point. Only the attributes the viewport and hit-testing
// engine read are modeled here.
type Entry struct {
	X, Y float64

	// YVals holds the stacked sub-values of a bar entry in drawing order.
	// When set, Y is their sum.
	YVals []float64

	// PositiveSum and NegativeSum are the totals of the positive values and
	// the magnitude of the negative values in YVals. NewDataSet computes
	// them when they are zero.
	PositiveSum float64
	NegativeSum float64

	// Size is the bubble radius value of a bubble entry.
	Size float64

	// High and Low are the shadow extremes of a candle entry.
	High, Low float64
}

// Stacked reports whether the entry carries stacked sub-values.
func (e *Entry) Stacked() bool {
	return len(e.YVals) > 0
}

// Rounding selects which entry to pick when no entry has the requested x.
type Rounding uint8

const (
	RoundClosest Rounding = iota // nearest x; ties resolve to the lower index
	RoundDown                    // nearest x at or below the value
	RoundUp                      // nearest x at or above the value
)

// DataSet is an ordered list of entries scaled against one vertical axis.
// Entries must be sorted by ascending X.
type DataSet struct {
	Label            string
	Entries          []Entry
	Axis             AxisDependency
	Visible          bool
	HighlightEnabled bool

	xMin, xMax float64
	yMin, yMax float64
	stacked    bool
	stackSize  int
}

// NewDataSet creates a visible, highlightable data set on the left axis and
// computes its bounds and stack sums.
func NewDataSet(label string, entries []Entry) *DataSet {
	d := &DataSet{
		Label:            label,
		Entries:          entries,
		Visible:          true,
		HighlightEnabled: true,
	}
	d.Recalculate()
	return d
}

// Recalculate recomputes x/y bounds, stack sums and the stacked flag.
// Call it after mutating Entries.
func (d *DataSet) Recalculate() {
	d.xMin, d.xMax = math.Inf(1), math.Inf(-1)
	d.yMin, d.yMax = math.Inf(1), math.Inf(-1)
	d.stacked = false
	d.stackSize = 1

	for i := range d.Entries {
		e := &d.Entries[i]
		if e.Stacked() {
			var pos, neg, sum float64
			for _, v := range e.YVals {
				if v < 0 {
					neg -= v
				} else {
					pos += v
				}
				sum += v
			}
			e.PositiveSum = pos
			e.NegativeSum = neg
			e.Y = sum
			d.stacked = true
			if len(e.YVals) > d.stackSize {
				d.stackSize = len(e.YVals)
			}
			d.yMin = math.Min(d.yMin, -neg)
			d.yMax = math.Max(d.yMax, pos)
		} else {
			if math.IsNaN(e.Y) {
				continue
			}
			lo, hi := e.Y, e.Y
			if e.High != 0 || e.Low != 0 {
				lo, hi = math.Min(e.Low, lo), math.Max(e.High, hi)
			}
			d.yMin = math.Min(d.yMin, lo)
			d.yMax = math.Max(d.yMax, hi)
		}
		d.xMin = math.Min(d.xMin, e.X)
		d.xMax = math.Max(d.xMax, e.X)
	}
}

// EntryCount returns the number of entries.
func (d *DataSet) EntryCount() int { return len(d.Entries) }

// Stacked reports whether any entry carries stacked sub-values.
func (d *DataSet) Stacked() bool { return d.stacked }

// StackSize returns the largest number of sub-values of any entry (1 when
// nothing is stacked).
func (d *DataSet) StackSize() int { return d.stackSize }

// XMin returns the smallest entry x. +Inf when empty.
func (d *DataSet) XMin() float64 { return d.xMin }

// XMax returns the largest entry x. -Inf when empty.
func (d *DataSet) XMax() float64 { return d.xMax }

// YMin returns the smallest y (or negative stack sum). +Inf when empty.
func (d *DataSet) YMin() float64 { return d.yMin }

// YMax returns the largest y (or positive stack sum). -Inf when empty.
func (d *DataSet) YMax() float64 { return d.yMax }

// EntryIndex returns the index of the entry with x equal to or nearest the
// given x, or -1 when the set is empty. Values beyond the x-extent clamp to
// the edge entry. RoundClosest resolves equal distances toward the lower
// index; when several entries share the found x, the first one is returned.
func (d *DataSet) EntryIndex(x float64, rounding Rounding) int {
	n := len(d.Entries)
	if n == 0 || math.IsNaN(x) {
		return -1
	}

	// First index with Entries[i].X >= x.
	lo, hi := 0, n
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		if d.Entries[m].X < x {
			lo = m + 1
		} else {
			hi = m
		}
	}

	var idx int
	switch {
	case lo < n && d.Entries[lo].X == x:
		idx = lo
	case lo == 0:
		idx = 0
	case lo == n:
		idx = n - 1
	default:
		below, above := lo-1, lo
		switch rounding {
		case RoundDown:
			idx = below
		case RoundUp:
			idx = above
		default:
			if x-d.Entries[below].X <= d.Entries[above].X-x {
				idx = below
			} else {
				idx = above
			}
		}
	}

	// Rewind to the first entry sharing this x.
	ex := d.Entries[idx].X
	for idx > 0 && d.Entries[idx-1].X == ex {
		idx--
	}
	return idx
}

// EntriesForX returns the half-open index span [from, to) of entries whose x
// equals the given x exactly.
func (d *DataSet) EntriesForX(x float64) (from, to int) {
	n := len(d.Entries)
	lo, hi := 0, n
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		if d.Entries[m].X < x {
			lo = m + 1
		} else {
			hi = m
		}
	}
	to = lo
	for to < n && d.Entries[to].X == x {
		to++
	}
	return lo, to
}

// DefaultBarWidth is the bar width in x units used by NewChartData.
const DefaultBarWidth = 0.85

// ChartData groups the data sets of one chart. Nil sets are skipped.
type ChartData struct {
	DataSets []*DataSet

	// BarWidth is the width of one bar in x units. Bar charts pad their
	// x-range by half of it on both sides.
	BarWidth float64
}

// NewChartData creates chart data from the given sets.
func NewChartData(sets ...*DataSet) *ChartData {
	return &ChartData{DataSets: sets, BarWidth: DefaultBarWidth}
}

// DataSetCount returns the number of data sets.
func (c *ChartData) DataSetCount() int {
	if c == nil {
		return 0
	}
	return len(c.DataSets)
}

// EntryCount returns the total entry count across all sets.
func (c *ChartData) EntryCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, s := range c.DataSets {
		if s != nil {
			n += s.EntryCount()
		}
	}
	return n
}

// MaxEntryCountSet returns the set with the most entries, or nil.
func (c *ChartData) MaxEntryCountSet() *DataSet {
	if c == nil {
		return nil
	}
	var best *DataSet
	for _, s := range c.DataSets {
		if s == nil {
			continue
		}
		if best == nil || s.EntryCount() > best.EntryCount() {
			best = s
		}
	}
	return best
}

// XRange returns the x extent of all visible sets. ok is false when no
// visible set has entries.
func (c *ChartData) XRange() (xMin, xMax float64, ok bool) {
	xMin, xMax = math.Inf(1), math.Inf(-1)
	if c == nil {
		return xMin, xMax, false
	}
	for _, s := range c.DataSets {
		if s == nil || !s.Visible || s.EntryCount() == 0 {
			continue
		}
		xMin = math.Min(xMin, s.xMin)
		xMax = math.Max(xMax, s.xMax)
		ok = true
	}
	return xMin, xMax, ok
}

// YRange returns the y extent of all visible sets on the given axis.
// ok is false when the axis has no visible entries.
func (c *ChartData) YRange(axis AxisDependency) (yMin, yMax float64, ok bool) {
	yMin, yMax = math.Inf(1), math.Inf(-1)
	if c == nil {
		return yMin, yMax, false
	}
	for _, s := range c.DataSets {
		if s == nil || !s.Visible || s.Axis != axis || s.EntryCount() == 0 {
			continue
		}
		yMin = math.Min(yMin, s.yMin)
		yMax = math.Max(yMax, s.yMax)
		ok = true
	}
	return yMin, yMax, ok
}
