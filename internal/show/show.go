// Package show drives an animation in real time: it turns wall-clock time
// into a playback fraction, renders a frame per tick and fans the frames
// out to subscribers.
package show

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/idralyuk/GradienTea-sub001/internal/anim"
	"github.com/idralyuk/GradienTea-sub001/internal/dmx"
	"github.com/idralyuk/GradienTea-sub001/internal/logging"
	"github.com/idralyuk/GradienTea-sub001/internal/vecmath"
)

// SubscriberBuffer is the number of frames a subscriber may fall behind
// before frames are dropped for it.
const SubscriberBuffer = 2

var (
	// ErrInvalidTiming is returned for a non-positive frame rate or period.
	ErrInvalidTiming = errors.New("show: invalid timing")

	// ErrDuplicateSubscriber is returned when an id is already subscribed.
	ErrDuplicateSubscriber = errors.New("show: duplicate subscriber")
)

// Snapshot is one finished frame.
type Snapshot struct {
	Seq      uint64
	Fraction float64
	Frame    *dmx.Frame
}

// FrameChan receives snapshots for one subscriber. It is closed on
// Unsubscribe and when the loop stops.
type FrameChan chan Snapshot

// Loop renders frames at a fixed rate.
type Loop struct {
	anim      anim.Animation
	renderer  *dmx.Renderer
	frameRate int
	period    time.Duration

	mu     sync.RWMutex
	seq    uint64
	latest *Snapshot
	subs   map[string]FrameChan
}

// New returns a loop playing a once per period at frameRate frames per second.
func New(a anim.Animation, r *dmx.Renderer, frameRate int, period time.Duration) (*Loop, error) {
	if frameRate < 1 || period <= 0 {
		return nil, fmt.Errorf("new loop: rate %d, period %v: %w", frameRate, period, ErrInvalidTiming)
	}
	return &Loop{
		anim:      a,
		renderer:  r,
		frameRate: frameRate,
		period:    period,
		subs:      make(map[string]FrameChan),
	}, nil
}

// Interval is the time between frames.
func (l *Loop) Interval() time.Duration {
	return time.Second / time.Duration(l.frameRate)
}

// FramesPerCycle is how many frames one period spans, at least 1.
func (l *Loop) FramesPerCycle() int {
	n := int(l.period / l.Interval())
	if n < 1 {
		n = 1
	}
	return n
}

// Fraction maps elapsed playback time to a position in the cycle.
func (l *Loop) Fraction(elapsed time.Duration) float64 {
	return vecmath.WrapUnit(float64(elapsed) / float64(l.period))
}

// Subscribe registers id for frames.
func (l *Loop) Subscribe(id string) (FrameChan, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.subs[id]; ok {
		return nil, fmt.Errorf("subscribe %q: %w", id, ErrDuplicateSubscriber)
	}
	ch := make(FrameChan, SubscriberBuffer)
	l.subs[id] = ch
	logging.Logger().Debug("subscriber added", "id", id, "subscribers", len(l.subs))
	return ch, nil
}

// Unsubscribe removes id and closes its channel. Unknown ids are ignored.
func (l *Loop) Unsubscribe(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ch, ok := l.subs[id]; ok {
		close(ch)
		delete(l.subs, id)
	}
}

// Subscribers returns the number of registered subscribers.
func (l *Loop) Subscribers() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.subs)
}

// Latest returns the most recent snapshot. ok is false before the first frame.
func (l *Loop) Latest() (s Snapshot, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.latest == nil {
		return Snapshot{}, false
	}
	return *l.latest, true
}

// Step renders the frame for elapsed playback time and broadcasts it.
func (l *Loop) Step(elapsed time.Duration) (Snapshot, error) {
	f := l.Fraction(elapsed)
	frame, err := l.renderer.Render(l.anim.Render(f))
	if err != nil {
		return Snapshot{}, fmt.Errorf("step at %.4f: %w", f, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	s := Snapshot{Seq: l.seq, Fraction: f, Frame: frame}
	l.latest = &s

	// Slow subscribers miss frames rather than stall the loop.
	for _, ch := range l.subs {
		select {
		case ch <- s:
		default:
		}
	}
	return s, nil
}

// Run ticks until ctx is done or a frame fails to render. A cancelled
// context is a clean stop and returns nil. Every subscriber channel is
// closed on return.
func (l *Loop) Run(ctx context.Context) error {
	defer l.closeAll()

	ticker := time.NewTicker(l.Interval())
	defer ticker.Stop()

	start := time.Now()
	logging.Logger().Info("show started", "frame_rate", l.frameRate, "period", l.period)
	for {
		select {
		case <-ctx.Done():
			logging.Logger().Info("show stopped", "frames", l.frameCount())
			return nil
		case now := <-ticker.C:
			if _, err := l.Step(now.Sub(start)); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) frameCount() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.seq
}

func (l *Loop) closeAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, ch := range l.subs {
		close(ch)
		delete(l.subs, id)
	}
}
