package pipeline

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/docrender/internal/theme"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_DifferentInputs(t *testing.T) {
	h1 := ContentHashHex([]byte("aaa"))
	h2 := ContentHashHex([]byte("bbb"))
	if h1 == h2 {
		t.Error("expected different hashes for different inputs")
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	// SHA-256 of empty input is well-known.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusRendering, "rendering"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_SetStatusFailed(t *testing.T) {
	job := &Job{
		ID:        "test-fail",
		Status:    StatusRendering,
		UpdatedAt: time.Now(),
	}
	job.SetStatus(StatusFailed, "rendering")
	if job.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, job.Status)
	}
}

func TestNewJob(t *testing.T) {
	data := []byte("hello world")
	job := NewJob("notes.md", "Notes", "", data)
	if _, err := uuid.Parse(job.ID); err != nil {
		t.Errorf("expected uuid job id, got %q: %v", job.ID, err)
	}
	if job.Status != StatusQueued || job.Phase != "queued" {
		t.Errorf("expected queued job, got %q/%q", job.Status, job.Phase)
	}
	if job.ContentHash != ContentHashHex(data) {
		t.Errorf("expected content hash of upload, got %q", job.ContentHash)
	}
	if string(job.FileData()) != "hello world" {
		t.Errorf("unexpected file data %q", job.FileData())
	}
	if other := NewJob("notes.md", "Notes", "", data); other.ID == job.ID {
		t.Error("expected distinct job ids")
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("parse: bad input")
	job.AddError("unknown theme")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "parse: bad input" {
		t.Errorf("expected first error %q, got %q", "parse: bad input", snap.Progress.Errors[0])
	}
}

func TestJob_SetProgress(t *testing.T) {
	job := &Job{ID: "progress-test", UpdatedAt: time.Now()}
	job.SetProgress(3, 5)
	job.SetProgress(7, 12)

	snap := job.Snapshot()
	if snap.Progress.NodesRendered != 7 || snap.Progress.BlocksAdded != 12 {
		t.Errorf("expected 7 nodes and 12 blocks, got %+v", snap.Progress)
	}
}

func TestJob_ResultOnlyWhenCompleted(t *testing.T) {
	job := NewJob("a.txt", "", "", []byte("x"))
	if _, ok := job.Result(); ok {
		t.Fatal("expected no result for a queued job")
	}
	job.complete([]byte("PK"))
	data, ok := job.Result()
	if !ok || string(data) != "PK" {
		t.Fatalf("expected completed result, got %q %v", data, ok)
	}
	snap := job.Snapshot()
	if snap.Status != StatusCompleted || snap.Progress.Bytes != 2 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if job.FileData() != nil {
		t.Error("expected upload to be released after completion")
	}
}

func TestJob_Theme(t *testing.T) {
	job := NewJob("a.txt", "", "default", nil)
	if _, ok := job.Theme(); ok {
		t.Fatal("expected no uploaded theme")
	}
	th := theme.Default()
	th.Name = "custom"
	job.SetTheme(th)
	got, ok := job.Theme()
	if !ok || got.Name != "custom" || job.Snapshot().ThemeName != "custom" {
		t.Errorf("expected uploaded theme to be attached, got %q", got.Name)
	}
}

func TestJob_FileData(t *testing.T) {
	job := &Job{ID: "data-test"}
	data := []byte("file content here")
	job.SetFileData(data)
	got := job.FileData()
	if string(got) != string(data) {
		t.Errorf("expected file data %q, got %q", data, got)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}

func TestJobStore_Counts(t *testing.T) {
	store := NewJobStore(time.Hour)
	for i, st := range []JobStatus{StatusQueued, StatusFailed, StatusFailed} {
		store.Put(&Job{ID: string(rune('a' + i)), Status: st, UpdatedAt: time.Now()})
	}
	counts := store.Counts()
	if counts[StatusQueued] != 1 || counts[StatusFailed] != 2 || counts[StatusCompleted] != 0 {
		t.Errorf("unexpected counts %v", counts)
	}
}
