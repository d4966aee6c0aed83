package notify

import (
	"context"
	"route-planner-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBrokerDeliversPerSession(t *testing.T) {
	b := NewBroker()
	a := b.Subscribe("a")
	other := b.Subscribe("b")

	b.Notify(context.Background(), domain.Event{SessionID: "a", Type: domain.EventPlanCommitted, Token: 3})

	select {
	case evt := <-a:
		require.Equal(t, domain.RunToken(3), evt.Token)
	default:
		t.Fatal("expected event on session a")
	}
	require.Len(t, other, 0)
}

func TestBrokerDropsWhenSubscriberIsFull(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("a")

	for i := 0; i < cap(ch)+5; i++ {
		b.Notify(context.Background(), domain.Event{SessionID: "a", Token: domain.RunToken(i)})
	}
	require.Len(t, ch, cap(ch))
}

func TestBrokerUnsubscribeClosesOnce(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("a")
	require.Equal(t, 1, b.Subscribers("a"))

	b.Unsubscribe("a", ch)
	b.Unsubscribe("a", ch)

	_, ok := <-ch
	require.False(t, ok)
	require.Equal(t, 0, b.Subscribers("a"))
}

type recorder struct{ events []domain.Event }

func (r *recorder) Notify(_ context.Context, evt domain.Event) { r.events = append(r.events, evt) }

func TestMultiFansOut(t *testing.T) {
	r1, r2 := &recorder{}, &recorder{}
	m := Multi{r1, nil, r2, LogNotifier{}}

	m.Notify(context.Background(), domain.Event{SessionID: "a", Type: domain.EventOptimizeFailed})

	require.Len(t, r1.events, 1)
	require.Len(t, r2.events, 1)
}
