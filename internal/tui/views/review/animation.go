package review

import (
	"math"
	"time"

	tea "charm.land/bubbletea/v2"
)

// Frame pacing and duration shaping for scroll animations. Duration grows
// with the square root of the distance so long jumps stay brisk.
const (
	scrollFrameInterval = 16 * time.Millisecond
	scrollBaseDuration  = 120 * time.Millisecond
	scrollMaxDuration   = 320 * time.Millisecond
	scrollDistanceGain  = 18.0 // milliseconds per sqrt(row)
)

// ScrollFrameMsg is one animation frame. Frames from a superseded
// animation carry a stale generation and are dropped by Step.
type ScrollFrameMsg struct {
	Gen int
	At  time.Time
}

// ScrollAnim animates a viewport offset toward a target. Starting a new
// target bumps the generation, which invalidates frames already in
// flight, so at most one animation is ever live.
type ScrollAnim struct {
	gen      int
	active   bool
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
}

// Start begins animating from one offset to another and returns the first
// frame command. A zero-distance move stops any running animation.
func (a *ScrollAnim) Start(from, to int) tea.Cmd {
	a.gen++
	if from == to {
		a.active = false
		return nil
	}

	a.active = true
	a.from = float64(from)
	a.to = float64(to)
	a.start = time.Now()

	d := scrollBaseDuration + time.Duration(scrollDistanceGain*math.Sqrt(math.Abs(a.to-a.from)))*time.Millisecond
	a.duration = min(d, scrollMaxDuration)

	return a.frame()
}

// Step advances the animation for a frame message. ok is false when the
// frame is stale and must be ignored. cmd is nil once the target offset
// is reached.
func (a *ScrollAnim) Step(msg ScrollFrameMsg) (offset int, ok bool, cmd tea.Cmd) {
	if !a.active || msg.Gen != a.gen {
		return 0, false, nil
	}

	elapsed := msg.At.Sub(a.start)
	if elapsed >= a.duration {
		a.active = false
		return int(a.to), true, nil
	}

	t := easeOutCubic(float64(elapsed) / float64(a.duration))
	return int(math.Round(a.from + (a.to-a.from)*t)), true, a.frame()
}

// Stop cancels the running animation. In-flight frames become stale.
func (a *ScrollAnim) Stop() {
	a.gen++
	a.active = false
}

// Target returns the destination offset of the running animation.
func (a *ScrollAnim) Target() (int, bool) {
	if !a.active {
		return 0, false
	}
	return int(a.to), true
}

func (a *ScrollAnim) frame() tea.Cmd {
	gen := a.gen
	return tea.Tick(scrollFrameInterval, func(t time.Time) tea.Msg {
		return ScrollFrameMsg{Gen: gen, At: t}
	})
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
