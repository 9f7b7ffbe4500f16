package filters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ApplyMode decides when staged changes become visible. It is fixed for the
// lifetime of a widget.
type ApplyMode int

const (
	// Immediate commits every change as soon as it is made.
	Immediate ApplyMode = iota
	// Gated accumulates changes until Confirm is called.
	Gated
)

func (m ApplyMode) String() string {
	if m == Gated {
		return "gated"
	}
	return "immediate"
}

func ParseApplyMode(s string) (ApplyMode, error) {
	switch strings.ToLower(s) {
	case "", "immediate":
		return Immediate, nil
	case "gated", "button":
		return Gated, nil
	}
	return Immediate, fmt.Errorf("unknown apply mode %q", s)
}

type State int

const (
	Idle State = iota
	Staged
	Committing
)

func (s State) String() string {
	switch s {
	case Staged:
		return "staged"
	case Committing:
		return "committing"
	default:
		return "idle"
	}
}

// Applier makes a committed selection visible. *Adapter implements it.
type Applier interface {
	Apply(ctx context.Context, sel Selection, rc RenderContext) (AppliedResult, error)
}

// Controller is the apply-mode state machine in front of a Store.
type Controller struct {
	mode    ApplyMode
	rc      RenderContext
	store   *Store
	applier Applier
	state   State
	logger  *zap.Logger

	// confirmQueued is set when Confirm is called during a commit.
	confirmQueued bool
}

type ControllerOption func(*Controller)

func WithControllerLogger(l *zap.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

func NewController(mode ApplyMode, rc RenderContext, store *Store, applier Applier, opts ...ControllerOption) *Controller {
	c := &Controller{
		mode:    mode,
		rc:      rc,
		store:   store,
		applier: applier,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Mode() ApplyMode { return c.mode }

func (c *Controller) Store() *Store { return c.store }

func (c *Controller) RenderContext() RenderContext { return c.rc }

// Change stages ch. Under Immediate mode it is committed and applied right
// away; under Gated mode it waits for Confirm. Changes arriving while a commit
// is in flight are queued behind it.
func (c *Controller) Change(ctx context.Context, ch Change) (AppliedResult, error) {
	if err := c.store.Stage(ch); err != nil {
		return AppliedResult{}, err
	}
	if c.state == Committing {
		return AppliedResult{}, nil
	}
	if c.mode == Gated {
		c.settle()
		return AppliedResult{}, nil
	}
	if !c.store.HasPending() {
		return AppliedResult{}, nil
	}
	return c.commit(ctx)
}

// Confirm commits every staged change as one selection change. It is a no-op
// outside the Staged state.
func (c *Controller) Confirm(ctx context.Context) (AppliedResult, error) {
	switch c.state {
	case Committing:
		c.confirmQueued = true
		return AppliedResult{}, nil
	case Idle:
		return AppliedResult{}, nil
	}
	if !c.store.HasPending() {
		c.state = Idle
		return AppliedResult{}, nil
	}
	return c.commit(ctx)
}

// Cancel discards the staged buffer.
func (c *Controller) Cancel() {
	if c.state != Staged {
		return
	}
	c.store.Discard()
	c.state = Idle
}

func (c *Controller) settle() {
	if c.store.HasPending() {
		c.state = Staged
	} else {
		c.state = Idle
	}
}

func (c *Controller) commit(ctx context.Context) (AppliedResult, error) {
	// failed collects apply errors of Immediate commits that were followed
	// by queued changes.
	var failed error
	for {
		c.state = Committing
		var res AppliedResult
		_, err := c.store.commitWith(func(sel Selection) error {
			var applyErr error
			res, applyErr = c.applier.Apply(ctx, sel, c.rc)
			return applyErr
		}, c.mode == Gated)

		switch {
		case errors.Is(err, ErrStaleCommit):
			if c.mode == Immediate || c.confirmQueued {
				c.confirmQueued = false
				c.logger.Debug("stale commit superseded, committing queued changes")
				continue
			}
			c.state = Staged
			return AppliedResult{}, errors.Join(failed, err)

		case err != nil:
			c.confirmQueued = false
			c.logger.Warn("filter apply failed",
				zap.Stringer("mode", c.mode),
				zap.Stringer("context", c.rc),
				zap.Error(err))
			failed = errors.Join(failed, err)
			if c.mode == Immediate && c.store.HasPending() {
				continue
			}
			c.settle()
			return AppliedResult{}, failed
		}

		c.confirmQueued = false
		c.settle()
		return res, failed
	}
}
