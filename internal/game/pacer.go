package game

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Pace selects the delay preset between scheduled transitions
type Pace string

const (
	PaceSlow      Pace = "slow"
	PaceNormal    Pace = "normal"
	PaceFast      Pace = "fast"
	PaceImmediate Pace = "immediate"
)

// paceDelays holds the per-transition-type delays of a preset
type paceDelays struct {
	card     time.Duration
	decision time.Duration
	result   time.Duration
}

var pacePresets = map[Pace]paceDelays{
	PaceSlow:   {card: 1200 * time.Millisecond, decision: 2000 * time.Millisecond, result: 2500 * time.Millisecond},
	PaceNormal: {card: 800 * time.Millisecond, decision: 1200 * time.Millisecond, result: 1500 * time.Millisecond},
	PaceFast:   {card: 400 * time.Millisecond, decision: 600 * time.Millisecond, result: 800 * time.Millisecond},
}

// delayFor maps a pending step to its preset delay
func (d paceDelays) delayFor(kind StepKind) time.Duration {
	switch kind {
	case StepDealCard, StepDealerReveal, StepDealerDraw:
		return d.card
	case StepNPCAction:
		return d.decision
	case StepResolve:
		return d.result
	default:
		return 0
	}
}

// Pacer drives a manually-stepped table on a timer chain so a consuming
// UI can animate transitions. At most one timer is in flight; Cancel
// stops it before any new round or reset, which keeps out-of-order
// mutation impossible. The mutex serializes timer callbacks against
// caller commands, preserving the table's single-writer requirement.
type Pacer struct {
	mu     sync.Mutex
	table  *Table
	clock  quartz.Clock
	delays paceDelays
	pace   Pace
	logger *log.Logger
	timer  *quartz.Timer
	gen    int
}

// NewPacer wraps a table built with WithManualStepping. The clock is
// injectable for tests; pass quartz.NewReal() in production.
func NewPacer(table *Table, pace Pace, clock quartz.Clock, logger *log.Logger) *Pacer {
	delays, ok := pacePresets[pace]
	if !ok {
		delays = paceDelays{}
	}
	return &Pacer{
		table:  table,
		clock:  clock,
		delays: delays,
		pace:   pace,
		logger: logger.WithPrefix("pacer"),
	}
}

// Do runs a table command under the pacer's lock and then schedules the
// resulting transition chain. Use it for every table mutation:
//
//	pacer.Do(func(t *game.Table) error { return t.StartRound() })
func (p *Pacer) Do(fn func(t *Table) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := fn(p.table); err != nil {
		return err
	}
	p.scheduleLocked()
	return nil
}

// View reads table state under the pacer's lock
func (p *Pacer) View(fn func(t *Table)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.table)
}

// Cancel stops the in-flight timer chain. Pending transitions are
// discarded, not executed; the table is left wherever it was, so a
// caller typically follows with a Reset through Do.
func (p *Pacer) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelLocked()
}

func (p *Pacer) cancelLocked() {
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// scheduleLocked arms a timer for the next pending transition. The
// generation counter makes a fired-but-stale callback a no-op after
// Cancel, closing the race between Stop and an already-running callback.
func (p *Pacer) scheduleLocked() {
	kind := p.table.PendingStep()
	if kind == StepNone || kind == StepHumanAction {
		return
	}

	if p.pace == PaceImmediate {
		for kind != StepNone && kind != StepHumanAction {
			if err := p.table.Step(); err != nil {
				p.logger.Error("step failed", "step", kind, "error", err)
				return
			}
			kind = p.table.PendingStep()
		}
		return
	}

	p.cancelLocked()
	gen := p.gen
	p.timer = p.clock.AfterFunc(p.delays.delayFor(kind), func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if gen != p.gen {
			return
		}
		p.timer = nil
		if err := p.table.Step(); err != nil {
			p.logger.Error("step failed", "error", err)
			return
		}
		p.scheduleLocked()
	})
}
