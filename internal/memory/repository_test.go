package memory

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/rcliao/memchat/internal/store"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	dir := t.TempDir()
	s, err := store.NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewRepository(s)
}

func TestApplyExtractedLastWriteWins(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	err := r.ApplyExtracted(ctx, []Candidate{
		{Key: "name", Value: "Alice", Replace: true},
		{Key: "name", Value: "Bob", Replace: true},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	snap, err := r.ProfileSnapshot(ctx, []string{"name"})
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap["name"] != "Bob" {
		t.Errorf("name = %q, want Bob", snap["name"])
	}
}

func TestApplyExtractedSkipsEmpty(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	if err := r.ApplyExtracted(ctx, []Candidate{{Key: "name", Value: "", Replace: true}}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	snap, _ := r.ProfileSnapshot(ctx, []string{"name"})
	if _, ok := snap["name"]; ok {
		t.Errorf("empty value should not be stored, got %v", snap)
	}
}

func TestProfileSnapshotAccumulating(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	for i := 1; i <= 7; i++ {
		err := r.ApplyExtracted(ctx, []Candidate{
			{Key: "likes", Value: fmt.Sprintf("thing%d", i), Replace: false},
		})
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
	}

	snap, err := r.ProfileSnapshot(ctx, []string{"likes"})
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	// Last 5, oldest first.
	want := "thing3, thing4, thing5, thing6, thing7"
	if snap["likes"] != want {
		t.Errorf("likes = %q, want %q", snap["likes"], want)
	}
}

func TestProfileSnapshotOmitsMissing(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	r.ApplyExtracted(ctx, []Candidate{{Key: "name", Value: "Alice", Replace: true}})

	snap, err := r.ProfileSnapshot(ctx, []string{"name", "location", "likes"})
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap) != 1 {
		t.Errorf("expected only name present, got %v", snap)
	}
	if _, ok := snap["location"]; ok {
		t.Error("absent key must be omitted, not empty")
	}
}

func TestRecentNotesNewestFirst(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	for _, n := range []string{"first", "second", "third"} {
		r.ApplyExtracted(ctx, []Candidate{{Key: "note", Value: n, Replace: false}})
	}

	notes, err := r.RecentNotes(ctx, 2)
	if err != nil {
		t.Fatalf("notes: %v", err)
	}
	if len(notes) != 2 || notes[0] != "third" || notes[1] != "second" {
		t.Errorf("notes = %v, want [third second]", notes)
	}
}
