// Package wizard drives the five-step custom home builder. It owns a single
// HomeConfiguration, keeps its estimate current and persists every change to
// a session slot so an interrupted session resumes where it stopped.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"buildmyhome/internal/estimate"
	"buildmyhome/internal/model"
	"buildmyhome/internal/session"
)

// SnapshotKey is the session key holding the builder state
const SnapshotKey = "homeBuilderDetails"

// DefaultTimeout bounds a single remote estimate
const DefaultTimeout = 5 * time.Second

var (
	// ErrPrecondition means the current step is missing a required selection
	ErrPrecondition = errors.New("step incomplete")
	// ErrNoPreviousStep is returned by Back on the first step
	ErrNoPreviousStep = errors.New("already at the first step")
	// ErrTerminalStep is returned by Next on the summary step
	ErrTerminalStep = errors.New("already at the last step")
	// ErrClosed is returned after Close
	ErrClosed = errors.New("wizard closed")
)

// Estimator prices a configuration remotely
type Estimator interface {
	Estimate(ctx context.Context, cfg model.HomeConfiguration) (int64, error)
}

// EstimatorFunc adapts a function to Estimator
type EstimatorFunc func(ctx context.Context, cfg model.HomeConfiguration) (int64, error)

func (f EstimatorFunc) Estimate(ctx context.Context, cfg model.HomeConfiguration) (int64, error) {
	return f(ctx, cfg)
}

// Options configures a Wizard
type Options struct {
	// Remote is tried first for every estimate. Nil means local only.
	Remote Estimator
	// Store receives a snapshot after every change. Nil means an in-memory store.
	Store session.Store
	// Timeout bounds each remote call. Zero means DefaultTimeout.
	Timeout time.Duration
}

// State is a copy of the wizard's current state
type State struct {
	Step   Step                    `json:"step"`
	Config model.HomeConfiguration `json:"config"`
	// Pending is true while a remote estimate for the current config is in flight
	Pending bool `json:"-"`
}

type snapshot struct {
	Step   Step                    `json:"step"`
	Config model.HomeConfiguration `json:"config"`
}

// Wizard is the builder state machine. All methods are safe for concurrent use.
type Wizard struct {
	remote  Estimator
	store   session.Store
	timeout time.Duration

	mu      sync.Mutex
	step    Step
	cfg     model.HomeConfiguration
	seq     uint64 // last issued estimate request
	cancel  context.CancelFunc
	pending bool
	closed  bool
	version uint64

	inflight sync.WaitGroup

	notifyMu  sync.Mutex
	delivered uint64
	observers map[int]func(State)
	nextObs   int
}

// DefaultConfiguration is the record a fresh builder starts from
func DefaultConfiguration() model.HomeConfiguration {
	cfg := model.HomeConfiguration{
		LandAreaSqFt: 1000,
		Floors:       1,
		Bedrooms:     2,
		Bathrooms:    2,
		HouseType:    model.HouseModern,
		BudgetRange:  model.Budget20To30,
		Design: &model.Design{
			FloorPlan:     model.FloorPlanOpen,
			CeilingHeight: model.CeilingStandard,
			WindowStyle:   model.WindowStandard,
		},
		Materials:    model.Materials{},
		InteriorType: model.InteriorBasic,
		Interiors: &model.Interiors{
			LightingQuality: 1,
			Appliances:      []string{},
		},
	}
	cfg.EstimatedCostRupees = estimate.Estimate(cfg)
	return cfg
}

// New creates a wizard, restoring the snapshot in the store if there is one
func New(opts Options) *Wizard {
	w := &Wizard{
		remote:    opts.Remote,
		store:     opts.Store,
		timeout:   opts.Timeout,
		step:      Basics,
		cfg:       DefaultConfiguration(),
		observers: make(map[int]func(State)),
	}
	if w.store == nil {
		w.store = session.NewMemoryStore()
	}
	if w.timeout <= 0 {
		w.timeout = DefaultTimeout
	}

	if snap, ok := w.restore(); ok {
		w.step = snap.Step
		w.cfg = snap.Config
		if w.cfg.Materials == nil {
			w.cfg.Materials = model.Materials{}
		}
		// A session can end with an estimate still in flight; the saved
		// figure then belongs to an older configuration.
		if estimate.Ready(w.cfg) {
			if cost := estimate.Estimate(w.cfg); cost != w.cfg.EstimatedCostRupees {
				w.cfg.EstimatedCostRupees = cost
				w.persistLocked()
			}
		}
	}
	return w
}

func (w *Wizard) restore() (snapshot, bool) {
	var snap snapshot
	b, ok, err := w.store.Load(SnapshotKey)
	if err != nil {
		log.Printf("⚠️  Failed to load builder snapshot: %v", err)
		return snap, false
	}
	if !ok {
		return snap, false
	}
	if err := json.Unmarshal(b, &snap); err != nil || !snap.Step.Valid() {
		log.Printf("⚠️  Ignoring unreadable builder snapshot: %v", err)
		return snap, false
	}
	return snap, true
}

// State returns a copy of the current state
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Wizard) stateLocked() State {
	return State{Step: w.step, Config: w.cfg.Clone(), Pending: w.pending}
}

// Watch registers fn to receive the state after every change.
// fn runs synchronously and must not call back into the wizard.
// The returned function unregisters it.
func (w *Wizard) Watch(fn func(State)) func() {
	w.notifyMu.Lock()
	defer w.notifyMu.Unlock()

	id := w.nextObs
	w.nextObs++
	w.observers[id] = fn
	return func() {
		w.notifyMu.Lock()
		defer w.notifyMu.Unlock()
		delete(w.observers, id)
	}
}

// Update is the single entry point for edits. fn mutates the configuration in
// place; the estimate is derived and any change fn makes to it is discarded.
// The edit is applied and persisted immediately, then a new estimate is requested.
func (w *Wizard) Update(fn func(cfg *model.HomeConfiguration)) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}

	last := w.cfg.EstimatedCostRupees
	fn(&w.cfg)
	w.cfg.EstimatedCostRupees = last

	w.requestEstimateLocked()
	w.persistLocked()
	st, v := w.changedLocked()
	w.mu.Unlock()

	w.notify(st, v)
	return nil
}

// CanAdvance reports whether Next would succeed from the current step
func (w *Wizard) CanAdvance() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.checkLocked()
}

func (w *Wizard) checkLocked() error {
	switch w.step {
	case Basics:
		if w.cfg.LandAreaSqFt <= 0 {
			return fmt.Errorf("%w: land area is required", ErrPrecondition)
		}
	case Design:
		if !w.cfg.Design.Complete() {
			return fmt.Errorf("%w: floor plan, ceiling height and window style are required", ErrPrecondition)
		}
	case Materials:
		if !w.cfg.Materials.HasAll(model.RequiredCategories) {
			return fmt.Errorf("%w: select flooring, walls, kitchen, bathroom and doors", ErrPrecondition)
		}
	case Summary:
		return ErrTerminalStep
	}
	return nil
}

// Next advances one step if the current step is complete
func (w *Wizard) Next() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if err := w.checkLocked(); err != nil {
		w.mu.Unlock()
		return err
	}

	w.step++
	w.persistLocked()
	st, v := w.changedLocked()
	w.mu.Unlock()

	w.notify(st, v)
	return nil
}

// Back returns to the previous step. No selection is cleared.
func (w *Wizard) Back() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if w.step == Basics {
		w.mu.Unlock()
		return ErrNoPreviousStep
	}

	w.step--
	w.persistLocked()
	st, v := w.changedLocked()
	w.mu.Unlock()

	w.notify(st, v)
	return nil
}

// StartFresh discards the configuration, clears the snapshot and returns to
// the first step. Outstanding estimates are dropped.
func (w *Wizard) StartFresh() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}

	w.supersedeLocked()
	w.step = Basics
	w.cfg = DefaultConfiguration()
	if err := w.store.Clear(SnapshotKey); err != nil {
		log.Printf("⚠️  Failed to clear builder snapshot: %v", err)
	}
	st, v := w.changedLocked()
	w.mu.Unlock()

	w.notify(st, v)
	return nil
}

// Wait blocks until no remote estimate is in flight
func (w *Wizard) Wait() {
	w.inflight.Wait()
}

// Close cancels outstanding estimates without waiting for them.
// Results that arrive later are dropped.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.supersedeLocked()
	w.closed = true
}

// supersedeLocked invalidates any outstanding request and returns the new sequence
func (w *Wizard) supersedeLocked() uint64 {
	w.seq++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.pending = false
	return w.seq
}

// requestEstimateLocked starts pricing the current configuration. Without a
// remote estimator the local formula is applied synchronously.
func (w *Wizard) requestEstimateLocked() {
	seq := w.supersedeLocked()
	if !estimate.Ready(w.cfg) {
		return
	}

	if w.remote == nil {
		w.cfg.EstimatedCostRupees = estimate.Estimate(w.cfg)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	w.cancel = cancel
	w.pending = true
	target := w.cfg.Clone()

	w.inflight.Add(1)
	go func() {
		defer w.inflight.Done()
		defer cancel()

		cost, err := w.remote.Estimate(ctx, target)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return
			}
			log.Printf("⚠️  Remote estimate failed, using local formula: %v", err)
			cost = estimate.Estimate(target)
		}
		w.apply(seq, cost)
	}()
}

// apply adopts cost if seq is still the latest request
func (w *Wizard) apply(seq uint64, cost int64) {
	w.mu.Lock()
	if w.closed || seq != w.seq {
		w.mu.Unlock()
		return
	}

	w.cfg.EstimatedCostRupees = cost
	w.pending = false
	w.cancel = nil
	w.persistLocked()
	st, v := w.changedLocked()
	w.mu.Unlock()

	w.notify(st, v)
}

func (w *Wizard) persistLocked() {
	b, err := json.Marshal(snapshot{Step: w.step, Config: w.cfg})
	if err != nil {
		log.Printf("⚠️  Failed to encode builder snapshot: %v", err)
		return
	}
	if err := w.store.Save(SnapshotKey, b); err != nil {
		log.Printf("⚠️  Failed to save builder snapshot: %v", err)
	}
}

func (w *Wizard) changedLocked() (State, uint64) {
	w.version++
	return w.stateLocked(), w.version
}

// notify delivers st unless a newer state has already been delivered
func (w *Wizard) notify(st State, version uint64) {
	w.notifyMu.Lock()
	defer w.notifyMu.Unlock()

	if version <= w.delivered {
		return
	}
	w.delivered = version
	for _, fn := range w.observers {
		fn(st)
	}
}
