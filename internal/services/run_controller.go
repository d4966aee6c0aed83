package services

import (
	"context"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
	"sync"
)

const unavailableMessage = "routing service unavailable, try again later"

// Run is the handle of one optimize cycle.
type Run struct {
	token domain.RunToken
	ctl   *RunController
}

func (r *Run) Token() domain.RunToken {
	if r == nil {
		return 0
	}
	return r.token
}

// Current reports whether no newer cycle has been issued since r began.
// A nil Run is always current.
func (r *Run) Current() bool {
	if r == nil || r.ctl == nil {
		return true
	}
	return r.ctl.isCurrent(r.token)
}

// RunController issues optimize tokens for one session and decides which
// results may become visible.
//
// Only the run holding the latest token may commit a plan or raise a failure
// notification, and the failure notification fires at most once per token
// and never after that token committed. Events are delivered while the lock
// is held so subscribers observe them in token order; notifiers must not call
// back into the controller.
type RunController struct {
	mu        sync.Mutex
	sessionID string
	notifier  ports.Notifier

	current  domain.RunToken
	plan     *domain.RoutePlan
	notified domain.RunToken
}

func NewRunController(sessionID string, notifier ports.Notifier) *RunController {
	return &RunController{sessionID: sessionID, notifier: notifier}
}

// Begin issues a new token; every earlier run becomes stale.
func (c *RunController) Begin() *Run {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current++
	return &Run{token: c.current, ctl: c}
}

func (c *RunController) CurrentToken() domain.RunToken {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *RunController) isCurrent(token domain.RunToken) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return token == c.current
}

// Plan returns the committed plan, if any. Plans are never mutated after
// commit.
func (c *RunController) Plan() *domain.RoutePlan {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plan
}

// Commit replaces the visible plan with plan when run is still current.
func (c *RunController) Commit(ctx context.Context, run *Run, plan *domain.RoutePlan) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if run == nil || plan == nil || run.token != c.current {
		return false
	}

	plan.Token = run.token
	c.plan = plan

	if c.notifier != nil {
		c.notifier.Notify(ctx, domain.Event{
			SessionID: c.sessionID,
			Type:      domain.EventPlanCommitted,
			Token:     run.token,
			Plan:      plan,
		})
	}
	return true
}

// Fail raises the user-facing failure notification for run. It reports false
// when run is stale, already committed, or already notified.
func (c *RunController) Fail(ctx context.Context, run *Run, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if run == nil || run.token != c.current {
		return false
	}
	if c.plan != nil && c.plan.Token == run.token {
		return false
	}
	if c.notified == run.token {
		return false
	}
	c.notified = run.token

	if c.notifier != nil {
		c.notifier.Notify(ctx, domain.Event{
			SessionID: c.sessionID,
			Type:      domain.EventOptimizeFailed,
			Token:     run.token,
			Message:   unavailableMessage,
		})
	}
	return true
}

// Reset drops the visible plan and supersedes any in-flight run.
func (c *RunController) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current++
	c.plan = nil
}
