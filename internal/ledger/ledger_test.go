package ledger

import "testing"

func TestBeginAndFinishRun(t *testing.T) {
	l, err := Open(":memory:", false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer l.Close()

	runID, err := l.BeginRun("base/api.h", "head/api.h")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if runID == "" {
		t.Fatalf("expected non-empty run id")
	}

	if err := l.FinishRun(runID, 1, 2, 3, "html", nil); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	var run Run
	if err := l.db.First(&run, "id = ?", runID).Error; err != nil {
		t.Fatalf("lookup run: %v", err)
	}
	if run.Status != "completed" {
		t.Fatalf("Status = %q, want completed", run.Status)
	}
	if run.AddedCount != 1 || run.RemovedCount != 2 || run.ModifiedCount != 3 {
		t.Fatalf("unexpected counts: %+v", run)
	}
}

func TestMonotonicPublicULIDsAcrossRuns(t *testing.T) {
	l, err := Open(":memory:", false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer l.Close()

	id1, _ := l.BeginRun("a.h", "b.h")
	id2, _ := l.BeginRun("a.h", "b.h")
	if id1 == id2 {
		t.Fatalf("expected distinct run ids")
	}

	var run1, run2 Run
	l.db.First(&run1, "id = ?", id1)
	l.db.First(&run2, "id = ?", id2)
	if run1.PublicULID == "" || run2.PublicULID == "" {
		t.Fatalf("expected non-empty public ULIDs")
	}
	if run1.PublicULID >= run2.PublicULID {
		t.Fatalf("expected monotonically increasing ULIDs: %s vs %s", run1.PublicULID, run2.PublicULID)
	}
}
