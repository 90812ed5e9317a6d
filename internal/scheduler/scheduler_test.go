package scheduler

import (
	"testing"
	"time"
)

type fired struct {
	chatID int64
	id     string
}

func collect() (chan fired, FireFunc) {
	ch := make(chan fired, 16)
	return ch, func(chatID int64, id string) {
		ch <- fired{chatID: chatID, id: id}
	}
}

func waitFired(t *testing.T, ch chan fired) fired {
	t.Helper()
	select {
	case f := <-ch:
		return f
	case <-time.After(2 * time.Second):
		t.Fatalf("job did not fire in time")
		return fired{}
	}
}

func TestScheduleFires(t *testing.T) {
	ch, fn := collect()
	s := New(fn)
	s.Start()
	defer s.Stop()

	s.Schedule(42, "abcd1234", 10*time.Millisecond)

	f := waitFired(t, ch)
	if f.chatID != 42 || f.id != "abcd1234" {
		t.Fatalf("unexpected job: %+v", f)
	}
}

func TestScheduleFiresOnce(t *testing.T) {
	ch, fn := collect()
	s := New(fn)
	s.Start()
	defer s.Stop()

	s.Schedule(1, "x", 10*time.Millisecond)
	waitFired(t, ch)

	select {
	case f := <-ch:
		t.Fatalf("job fired twice: %+v", f)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestZeroAndNegativeDelay(t *testing.T) {
	ch, fn := collect()
	s := New(fn)
	s.Start()
	defer s.Stop()

	s.Schedule(1, "zero", 0)
	waitFired(t, ch)

	s.Schedule(1, "negative", -time.Minute)
	waitFired(t, ch)
}

func TestEarlierJobPreempts(t *testing.T) {
	ch, fn := collect()
	s := New(fn)
	s.Start()
	defer s.Stop()

	s.Schedule(1, "slow", 400*time.Millisecond)
	s.Schedule(1, "fast", 50*time.Millisecond)

	if f := waitFired(t, ch); f.id != "fast" {
		t.Fatalf("expected fast job first, got %q", f.id)
	}
	if f := waitFired(t, ch); f.id != "slow" {
		t.Fatalf("expected slow job second, got %q", f.id)
	}
}

func TestStopBeforeFire(t *testing.T) {
	ch, fn := collect()
	s := New(fn)
	s.Start()

	s.Schedule(1, "late", time.Hour)
	s.Stop()

	select {
	case f := <-ch:
		t.Fatalf("job fired after stop: %+v", f)
	case <-time.After(100 * time.Millisecond):
	}
}
