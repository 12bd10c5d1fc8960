package event

import (
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/fixedstep/parameter"
)

func TestQueuePushConsumeFIFO(t *testing.T) {
	q := NewQueue()

	for i := 0; i < 5; i++ {
		q.Push(Event{Type: TypeStepCompleted, Tick: uint64(i)})
	}

	got := q.Consume()
	if len(got) != 5 {
		t.Fatalf("Consumed %d events, want 5", len(got))
	}
	for i, ev := range got {
		if ev.Tick != uint64(i) {
			t.Errorf("Event %d tick = %d, want %d", i, ev.Tick, i)
		}
	}
}

func TestQueueConsumeEmpty(t *testing.T) {
	q := NewQueue()
	if got := q.Consume(); got != nil {
		t.Errorf("Consume on empty queue = %v, want nil", got)
	}
}

func TestQueueConsumeDrains(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Type: TypePaused})
	q.Consume()

	if got := q.Consume(); got != nil {
		t.Errorf("Second consume = %v, want nil", got)
	}
	if got := q.Len(); got != 0 {
		t.Errorf("Len after drain = %d, want 0", got)
	}
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewQueue()

	total := parameter.EventQueueSize + 100
	for i := 0; i < total; i++ {
		q.Push(Event{Type: TypeStepCompleted, Tick: uint64(i)})
	}

	got := q.Consume()
	if len(got) != parameter.EventQueueSize {
		t.Fatalf("Consumed %d events, want %d", len(got), parameter.EventQueueSize)
	}

	// Oldest 100 events were overwritten
	if got[0].Tick != 100 {
		t.Errorf("First surviving tick = %d, want 100", got[0].Tick)
	}
	if last := got[len(got)-1].Tick; last != uint64(total-1) {
		t.Errorf("Last tick = %d, want %d", last, total-1)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()

	const producers = 8
	const perProducer = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(Event{Type: TypeStepCompleted, Timestamp: time.Now()})
			}
		}()
	}
	wg.Wait()

	got := q.Consume()
	if len(got) != producers*perProducer {
		t.Errorf("Consumed %d events, want %d", len(got), producers*perProducer)
	}
}

type countingHandler struct {
	types []Type
	seen  []Event
}

func (h *countingHandler) HandleEvent(ctx *int, ev Event) {
	*ctx++
	h.seen = append(h.seen, ev)
}

func (h *countingHandler) EventTypes() []Type { return h.types }

func TestRouterDispatchOrder(t *testing.T) {
	q := NewQueue()
	r := NewRouter[*int](q)

	first := &countingHandler{types: []Type{TypeFrameTimeExceeded}}
	second := &countingHandler{types: []Type{TypeFrameTimeExceeded, TypePaused}}
	r.Register(first)
	r.Register(second)

	q.Push(Event{Type: TypeFrameTimeExceeded, Tick: 3})
	q.Push(Event{Type: TypePaused, Tick: 4})

	var calls int
	r.DispatchAll(&calls)

	if calls != 3 {
		t.Errorf("Handler invocations = %d, want 3", calls)
	}
	if len(first.seen) != 1 || first.seen[0].Tick != 3 {
		t.Errorf("First handler saw %v", first.seen)
	}
	if len(second.seen) != 2 {
		t.Errorf("Second handler saw %d events, want 2", len(second.seen))
	}

	if !r.HasHandlers(TypePaused) {
		t.Error("HasHandlers(TypePaused) = false")
	}
	if got := r.HandlerCount(TypeFrameTimeExceeded); got != 2 {
		t.Errorf("HandlerCount = %d, want 2", got)
	}
}
