package chartview

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MoveJob animates the viewport from its current top-left data value to a
// target. Each update maps the interpolated value to pixels and pans the
// viewport so that pixel lands on the content rect's top-left corner.
type MoveJob struct {
	chart  *Chart
	axis   AxisDependency
	from   Vec2
	to     Vec2
	tween  *gween.Tween
	phase  float64
	done   bool
	cancel bool
}

// Done reports whether the job finished or was cancelled.
func (j *MoveJob) Done() bool { return j.done || j.cancel }

// Cancel stops the job where it is.
func (j *MoveJob) Cancel() { j.cancel = true }

// Phase returns the eased progress in [0, 1].
func (j *MoveJob) Phase() float64 { return j.phase }

// Update advances the job by dt seconds and applies the interpolated
// position. It reports whether the job is still running.
func (j *MoveJob) Update(dt float32) bool {
	if j.Done() {
		return false
	}
	val, finished := j.tween.Update(dt)
	j.phase = float64(val)
	if finished {
		j.phase = 1
		j.done = true
	}
	x := j.from.X + (j.to.X-j.from.X)*j.phase
	y := j.from.Y + (j.to.Y-j.from.Y)*j.phase
	j.chart.moveTopLeftTo(x, y, j.axis)
	return !j.done
}

// MoveViewTo pans so the left edge of the viewport shows data x and the
// viewport is vertically centered on data y of the given axis.
func (c *Chart) MoveViewTo(x, y float64, axis AxisDependency) {
	c.moveTopLeftTo(x, y+c.visibleYRange(axis)/2, axis)
}

// MoveViewToAnimated is MoveViewTo tweened over duration seconds. A nil
// easing function means linear. Jobs run from Update.
func (c *Chart) MoveViewToAnimated(x, y float64, axis AxisDependency, duration float32, fn ease.TweenFunc) *MoveJob {
	return c.startMoveJob(x, y+c.visibleYRange(axis)/2, axis, duration, fn)
}

// CenterViewTo pans so the viewport is centered on the data point (x, y).
func (c *Chart) CenterViewTo(x, y float64, axis AxisDependency) {
	c.moveTopLeftTo(x-c.visibleXRange()/2, y+c.visibleYRange(axis)/2, axis)
}

// CenterViewToAnimated is CenterViewTo tweened over duration seconds.
func (c *Chart) CenterViewToAnimated(x, y float64, axis AxisDependency, duration float32, fn ease.TweenFunc) *MoveJob {
	return c.startMoveJob(x-c.visibleXRange()/2, y+c.visibleYRange(axis)/2, axis, duration, fn)
}

func (c *Chart) startMoveJob(x, y float64, axis AxisDependency, duration float32, fn ease.TweenFunc) *MoveJob {
	if fn == nil {
		fn = ease.Linear
	}
	if duration < 0 {
		duration = 0
	}
	content := c.vp.Content()
	from := c.mappers[axis].ToData(Vec2{X: content.Left, Y: content.Top})
	j := &MoveJob{
		chart: c,
		axis:  axis,
		from:  from,
		to:    Vec2{X: x, Y: y},
		tween: gween.New(0, 1, duration, fn),
	}
	c.jobs = append(c.jobs, j)
	return j
}

// moveTopLeftTo pans so the data point (x, y) sits at the content rect's
// top-left corner.
func (c *Chart) moveTopLeftTo(x, y float64, axis AxisDependency) {
	if !c.debugCheckLayout("move view") {
		return
	}
	px := c.mappers[axis].PixelFor(x, y)
	if c.vp.CenterViewport(px.X, px.Y) {
		c.afterViewportChange()
	}
}

// runJobs advances the move jobs and drops finished ones.
func (c *Chart) runJobs(dt float32) bool {
	n := 0
	for _, j := range c.jobs {
		if j.Update(dt) {
			c.jobs[n] = j
			n++
		}
	}
	for i := n; i < len(c.jobs); i++ {
		c.jobs[i] = nil
	}
	c.jobs = c.jobs[:n]
	return n > 0
}
