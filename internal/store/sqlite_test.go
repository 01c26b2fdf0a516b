package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecentMessages(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	contents := []string{"hello", "hi there", "how are you"}
	roles := []string{"user", "assistant", "user"}
	for i := range contents {
		if err := s.AppendMessage(ctx, "sess", roles[i], contents[i]); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	msgs, err := s.RecentMessages(ctx, "sess", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	for i, m := range msgs {
		if m.Content != contents[i] || m.Role != roles[i] {
			t.Errorf("message %d = %s/%q, want %s/%q", i, m.Role, m.Content, roles[i], contents[i])
		}
	}
}

func TestRecentMessagesWindow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, c := range []string{"one", "two", "three", "four"} {
		s.AppendMessage(ctx, "sess", "user", c)
	}

	msgs, err := s.RecentMessages(ctx, "sess", 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	// Last two, oldest of the window first.
	if msgs[0].Content != "three" || msgs[1].Content != "four" {
		t.Errorf("window = %q, %q; want three, four", msgs[0].Content, msgs[1].Content)
	}
}

func TestClearSession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AppendMessage(ctx, "a", "user", "keep out")
	s.AppendMessage(ctx, "b", "user", "survives")

	if err := s.ClearSession(ctx, "a"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	cleared, _ := s.RecentMessages(ctx, "a", 10)
	if len(cleared) != 0 {
		t.Errorf("expected empty session a, got %d messages", len(cleared))
	}
	kept, _ := s.RecentMessages(ctx, "b", 10)
	if len(kept) != 1 {
		t.Errorf("expected session b untouched, got %d messages", len(kept))
	}
}

func TestMigrateIdempotent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.AppendMessage(ctx, "sess", "user", "hello")
	s.Close()

	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer s2.Close()

	msgs, err := s2.RecentMessages(ctx, "sess", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "hello" {
		t.Errorf("expected data to survive reopen, got %v", msgs)
	}
}

func TestWriteFactReplace(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.WriteFact(ctx, "name", "Alice", true)
	s.WriteFact(ctx, "name", "Bob", true)

	v, ok, err := s.LatestFact(ctx, "name")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if !ok || v != "Bob" {
		t.Errorf("latest name = %q (ok=%v), want Bob", v, ok)
	}

	// Replace hard-deletes prior rows; the old value must be gone entirely.
	old, err := s.SearchFacts(ctx, "Alice", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(old) != 0 {
		t.Errorf("superseded value still present: %v", old)
	}
}

func TestWriteFactAppend(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.WriteFact(ctx, "likes", "coffee", false)
	s.WriteFact(ctx, "likes", "tea", false)

	values, err := s.AccumulatedFacts(ctx, "likes", 5)
	if err != nil {
		t.Fatalf("accumulated: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
}

func TestLatestFactMissing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, ok, err := s.LatestFact(ctx, "name")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if ok {
		t.Error("expected no value for unknown key")
	}
}

func TestAccumulatedFactsOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	all := []string{"a", "b", "c", "d", "e", "f", "g"}
	for _, v := range all {
		s.WriteFact(ctx, "likes", v, false)
	}

	values, err := s.AccumulatedFacts(ctx, "likes", 5)
	if err != nil {
		t.Fatalf("accumulated: %v", err)
	}
	want := []string{"c", "d", "e", "f", "g"}
	if len(values) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(values))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("values[%d] = %q, want %q", i, values[i], want[i])
		}
	}
}

func TestNotesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, n := range []string{"first", "second", "third"} {
		s.WriteFact(ctx, "note", n, false)
	}

	notes, err := s.Notes(ctx, 2)
	if err != nil {
		t.Fatalf("notes: %v", err)
	}
	if len(notes) != 2 || notes[0] != "third" || notes[1] != "second" {
		t.Errorf("notes = %v, want [third second]", notes)
	}
}

func TestSearchFacts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.WriteFact(ctx, "note", "buy coffee beans", false)
	s.WriteFact(ctx, "likes", "coffee", false)
	s.WriteFact(ctx, "note", "water the plants", false)

	results, err := s.SearchFacts(ctx, "coffee", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	// Reverse insertion order.
	if results[0] != "coffee" || results[1] != "buy coffee beans" {
		t.Errorf("results = %v", results)
	}

	limited, _ := s.SearchFacts(ctx, "coffee", 1)
	if len(limited) != 1 || limited[0] != "coffee" {
		t.Errorf("limited results = %v", limited)
	}
}

func TestExportAll(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.AppendMessage(ctx, "sess", "user", "hello")
	s.AppendMessage(ctx, "sess", "assistant", "hi")
	s.WriteFact(ctx, "name", "Alice", true)

	dump, err := s.ExportAll(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(dump.Messages) != 2 {
		t.Errorf("expected 2 messages, got %d", len(dump.Messages))
	}
	if len(dump.Facts) != 1 || dump.Facts[0].Key != "name" || dump.Facts[0].Value != "Alice" {
		t.Errorf("facts = %v", dump.Facts)
	}
}
