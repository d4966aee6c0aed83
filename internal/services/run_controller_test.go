package services

import (
	"context"
	"errors"
	"route-planner-service/internal/domain"
	"testing"
)

func TestRunControllerTokensIncrease(t *testing.T) {
	ctl := NewRunController("s", nil)

	a := ctl.Begin()
	b := ctl.Begin()
	if b.Token() <= a.Token() {
		t.Fatalf("tokens not increasing: %d then %d", a.Token(), b.Token())
	}
	if a.Current() || !b.Current() {
		t.Fatalf("only the latest run should be current")
	}
	if ctl.CurrentToken() != b.Token() {
		t.Fatalf("current token = %d, want %d", ctl.CurrentToken(), b.Token())
	}
}

func TestRunControllerCommitOnlyCurrent(t *testing.T) {
	n := &recordingNotifier{}
	ctl := NewRunController("s", n)
	ctx := context.Background()

	stale := ctl.Begin()
	fresh := ctl.Begin()

	if ctl.Commit(ctx, stale, &domain.RoutePlan{}) {
		t.Fatalf("stale run must not commit")
	}
	if !ctl.Commit(ctx, fresh, &domain.RoutePlan{Source: domain.PlanSourceNative}) {
		t.Fatalf("current run should commit")
	}

	plan := ctl.Plan()
	if plan == nil || plan.Token != fresh.Token() {
		t.Fatalf("plan = %+v, want token %d", plan, fresh.Token())
	}

	events := n.byType(domain.EventPlanCommitted)
	if len(events) != 1 || events[0].Token != fresh.Token() {
		t.Fatalf("unexpected commit events: %+v", events)
	}
}

func TestRunControllerFailNotifiesOncePerToken(t *testing.T) {
	n := &recordingNotifier{}
	ctl := NewRunController("s", n)
	ctx := context.Background()
	boom := errors.New("boom")

	stale := ctl.Begin()
	run := ctl.Begin()

	if ctl.Fail(ctx, stale, boom) {
		t.Fatalf("stale run must not notify")
	}
	if !ctl.Fail(ctx, run, boom) {
		t.Fatalf("first failure of current run should notify")
	}
	if ctl.Fail(ctx, run, boom) {
		t.Fatalf("second failure of the same run must not notify")
	}

	committed := ctl.Begin()
	ctl.Commit(ctx, committed, &domain.RoutePlan{})
	if ctl.Fail(ctx, committed, boom) {
		t.Fatalf("committed run must not notify")
	}

	events := n.byType(domain.EventOptimizeFailed)
	if len(events) != 1 || events[0].Token != run.Token() || events[0].Message == "" {
		t.Fatalf("unexpected failure events: %+v", events)
	}
}

func TestRunControllerResetDropsPlanAndSupersedes(t *testing.T) {
	ctl := NewRunController("s", nil)
	ctx := context.Background()

	run := ctl.Begin()
	ctl.Commit(ctx, run, &domain.RoutePlan{})

	inFlight := ctl.Begin()
	ctl.Reset()

	if ctl.Plan() != nil {
		t.Fatalf("expected plan to be dropped")
	}
	if inFlight.Current() {
		t.Fatalf("in-flight run should be superseded by reset")
	}
	if ctl.Commit(ctx, inFlight, &domain.RoutePlan{}) {
		t.Fatalf("superseded run must not commit after reset")
	}
}

func TestNilRunIsAlwaysCurrent(t *testing.T) {
	var r *Run
	if !r.Current() || r.Token() != 0 {
		t.Fatalf("nil run should be current with token 0")
	}
}
