package chartview

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animator drives the entrance animation phases of a chart. PhaseX is the
// share of entries drawn along the x-axis and PhaseY the share of each value
// drawn; both are in [0, 1] and rest at 1.
//
// There is no global animation manager; the chart calls Update each frame.
type Animator struct {
	phaseX, phaseY float64
	tweenX, tweenY *gween.Tween
}

// NewAnimator creates an animator with both phases at 1.
func NewAnimator() *Animator {
	return &Animator{phaseX: 1, phaseY: 1}
}

// PhaseX returns the x phase.
func (a *Animator) PhaseX() float64 { return a.phaseX }

// PhaseY returns the y phase.
func (a *Animator) PhaseY() float64 { return a.phaseY }

// SetPhaseX sets the x phase, clamped to [0, 1], and cancels its tween.
func (a *Animator) SetPhaseX(p float64) {
	a.phaseX = clamp01(p)
	a.tweenX = nil
}

// SetPhaseY sets the y phase, clamped to [0, 1], and cancels its tween.
func (a *Animator) SetPhaseY(p float64) {
	a.phaseY = clamp01(p)
	a.tweenY = nil
}

// AnimateX tweens the x phase from 0 to 1 over duration seconds. A nil
// easing function means linear.
func (a *Animator) AnimateX(duration float32, fn ease.TweenFunc) {
	a.tweenX = newPhaseTween(duration, fn)
	a.phaseX = 0
}

// AnimateY tweens the y phase from 0 to 1 over duration seconds.
func (a *Animator) AnimateY(duration float32, fn ease.TweenFunc) {
	a.tweenY = newPhaseTween(duration, fn)
	a.phaseY = 0
}

// AnimateXY tweens both phases. fnY falls back to fnX when nil.
func (a *Animator) AnimateXY(durationX, durationY float32, fnX, fnY ease.TweenFunc) {
	if fnY == nil {
		fnY = fnX
	}
	a.AnimateX(durationX, fnX)
	a.AnimateY(durationY, fnY)
}

// Running reports whether either phase is still tweening.
func (a *Animator) Running() bool {
	return a.tweenX != nil || a.tweenY != nil
}

// Update advances the tweens by dt seconds and reports whether either is
// still running.
func (a *Animator) Update(dt float32) bool {
	if a.tweenX != nil {
		val, done := a.tweenX.Update(dt)
		a.phaseX = clamp01(float64(val))
		if done {
			a.phaseX = 1
			a.tweenX = nil
		}
	}
	if a.tweenY != nil {
		val, done := a.tweenY.Update(dt)
		a.phaseY = clamp01(float64(val))
		if done {
			a.phaseY = 1
			a.tweenY = nil
		}
	}
	return a.Running()
}

func newPhaseTween(duration float32, fn ease.TweenFunc) *gween.Tween {
	if fn == nil {
		fn = ease.Linear
	}
	if duration <= 0 {
		duration = 0
	}
	return gween.New(0, 1, duration, fn)
}
