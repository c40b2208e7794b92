package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	apperrors "github.com/matzehuels/refgraph/pkg/errors"
	"github.com/matzehuels/refgraph/pkg/snapshot"
)

func sampleGraph(name string) snapshot.Graph {
	return snapshot.Graph{
		Name: name,
		Vertices: []snapshot.Vertex{
			{ID: 0, Label: "a"},
			{ID: 1, Label: "b"},
			{ID: 2, Label: "c"},
		},
		Edges: []snapshot.Edge{
			{ID: 0, Tail: 0, Head: 1},
			{ID: 1, Tail: 1, Head: 2},
		},
	}
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	return s
}

func TestFileStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	g := sampleGraph("services")

	rec, err := s.Save(ctx, "services", g)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if rec.ID == "" {
		t.Error("Save should assign an id")
	}
	if rec.Name != "services" {
		t.Errorf("rec.Name = %q, want %q", rec.Name, "services")
	}
	if rec.Vertices != 3 || rec.Edges != 2 {
		t.Errorf("rec counts = %d/%d, want 3/2", rec.Vertices, rec.Edges)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("rec.CreatedAt should be set")
	}

	entry, err := s.Load(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if entry.ID != rec.ID || entry.Name != rec.Name {
		t.Errorf("loaded record = %+v, want %+v", entry.Record, *rec)
	}
	if !entry.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("loaded CreatedAt = %v, want %v", entry.CreatedAt, rec.CreatedAt)
	}
	if !reflect.DeepEqual(entry.Graph, g) {
		t.Errorf("loaded graph = %+v, want %+v", entry.Graph, g)
	}
}

func TestFileStoreAssignsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r1, err := s.Save(ctx, "same-name", sampleGraph("g"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	r2, err := s.Save(ctx, "same-name", sampleGraph("g"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if r1.ID == r2.ID {
		t.Error("Saves should assign distinct ids even for identical input")
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load of missing id = %v, want ErrNotFound", err)
	}
}

func TestFileStoreList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, err := s.Save(ctx, "first", sampleGraph("g1"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := s.Save(ctx, "second", sampleGraph("g2"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("List returned %d records, want 2", len(records))
	}
	// Newest first
	if records[0].ID != second.ID || records[1].ID != first.ID {
		t.Errorf("List order = [%s %s], want [%s %s]",
			records[0].Name, records[1].Name, second.Name, first.Name)
	}
}

func TestFileStoreListEmpty(t *testing.T) {
	s := newTestStore(t)

	records, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("List of empty store returned %d records", len(records))
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rec, err := s.Save(ctx, "doomed", sampleGraph("g"))
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Load(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after Delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestFileStoreRejectsBadNames(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	g := sampleGraph("g")

	for _, name := range []string{"", "a/b", "../up", ".hidden"} {
		if _, err := s.Save(ctx, name, g); !apperrors.Is(err, apperrors.ErrCodeInvalidName) {
			t.Errorf("Save(%q) = %v, want INVALID_NAME", name, err)
		}
	}
}

func TestFileStoreRejectsInvalidSnapshot(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Edge 0 points at a vertex that does not exist
	bad := snapshot.Graph{
		Vertices: []snapshot.Vertex{{ID: 0}},
		Edges:    []snapshot.Edge{{ID: 0, Tail: 0, Head: 99}},
	}
	if _, err := s.Save(ctx, "bad", bad); !apperrors.Is(err, apperrors.ErrCodeInvalidSnapshot) {
		t.Errorf("Save of invalid snapshot = %v, want INVALID_SNAPSHOT", err)
	}
}
