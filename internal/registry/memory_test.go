package registry

import (
	"testing"
	"time"
)

func TestMemoryCreateGet(t *testing.T) {
	m := NewMemory()
	dl := time.Date(2026, 9, 15, 18, 0, 0, 0, time.Local)

	id, err := m.Create("канал", "текст розыгрыша", []string{"https://t.me/x"}, &dl)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatalf("empty id")
	}

	g, err := m.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if g == nil {
		t.Fatalf("record not found after create")
	}
	if g.ID != id || g.SourceLabel != "канал" || g.RawText != "текст розыгрыша" {
		t.Fatalf("fields mismatch: %+v", g)
	}
	if len(g.Links) != 1 || g.Links[0] != "https://t.me/x" {
		t.Fatalf("links mismatch: %v", g.Links)
	}
	if g.Deadline == nil || !g.Deadline.Equal(dl) {
		t.Fatalf("deadline mismatch: %v", g.Deadline)
	}
	if g.Archived {
		t.Fatalf("new record must not be archived")
	}
}

func TestMemoryGetUnknown(t *testing.T) {
	m := NewMemory()
	g, err := m.Get("nope")
	if err != nil || g != nil {
		t.Fatalf("unknown id: got %v, %v", g, err)
	}
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	m := NewMemory()
	id, _ := m.Create("", "t", []string{"http://a"}, nil)

	g, _ := m.Get(id)
	g.Links[0] = "http://hacked"
	g.Archived = true

	again, _ := m.Get(id)
	if again.Links[0] != "http://a" || again.Archived {
		t.Fatalf("stored record was mutated through the returned copy")
	}
}

func TestMemoryArchiveIdempotent(t *testing.T) {
	m := NewMemory()
	id, _ := m.Create("", "t", nil, nil)

	changed, err := m.Archive(id)
	if err != nil || !changed {
		t.Fatalf("first archive: changed=%v err=%v", changed, err)
	}
	changed, err = m.Archive(id)
	if err != nil || changed {
		t.Fatalf("second archive: changed=%v err=%v", changed, err)
	}
	changed, err = m.Archive("missing")
	if err != nil || changed {
		t.Fatalf("archive of unknown id: changed=%v err=%v", changed, err)
	}

	g, _ := m.Get(id)
	if !g.Archived {
		t.Fatalf("record must stay archived")
	}
}

func TestMemoryListActiveOrder(t *testing.T) {
	m := NewMemory()
	id1, _ := m.Create("a", "1", nil, nil)
	id2, _ := m.Create("b", "2", nil, nil)
	id3, _ := m.Create("c", "3", nil, nil)

	if _, err := m.Archive(id2); err != nil {
		t.Fatal(err)
	}

	active, err := m.ListActive(20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active, got %d", len(active))
	}
	if active[0].ID != id1 || active[1].ID != id3 {
		t.Fatalf("wrong order: %s, %s", active[0].ID, active[1].ID)
	}
}

func TestMemoryListActiveLimit(t *testing.T) {
	m := NewMemory()
	for i := 0; i < 5; i++ {
		if _, err := m.Create("", "t", nil, nil); err != nil {
			t.Fatal(err)
		}
	}
	active, _ := m.ListActive(3)
	if len(active) != 3 {
		t.Fatalf("expected 3, got %d", len(active))
	}
}

func TestMemoryCreateRetriesOnCollision(t *testing.T) {
	m := NewMemory()
	ids := []string{"aaaa", "aaaa", "bbbb"}
	calls := 0
	m.newID = func() string {
		id := ids[calls]
		calls++
		return id
	}

	first, _ := m.Create("", "1", nil, nil)
	second, _ := m.Create("", "2", nil, nil)

	if first != "aaaa" || second != "bbbb" {
		t.Fatalf("expected retry to pick a fresh id, got %q, %q", first, second)
	}
	if calls != 3 {
		t.Fatalf("expected 3 id generations, got %d", calls)
	}

	g, _ := m.Get("aaaa")
	if g.RawText != "1" {
		t.Fatalf("first record was overwritten on collision")
	}
}
