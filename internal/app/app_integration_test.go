package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
	"github.com/glabrego/jobtriage-cli/internal/storage"
	"github.com/glabrego/jobtriage-cli/internal/viewer"
)

func TestIntegration_ToggleSeenAndLoadMore(t *testing.T) {
	if os.Getenv("JOBTRIAGE_INTEGRATION") != "1" {
		t.Skip("set JOBTRIAGE_INTEGRATION=1 to run integration tests")
	}

	baseURL := os.Getenv("JOBTRIAGE_API")
	if baseURL == "" {
		t.Skip("JOBTRIAGE_API is required")
	}

	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "jobtriage-integration.db"))
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	if err := repo.Init(ctx); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	client := jobs.NewClient(baseURL, os.Getenv("JOBTRIAGE_TOKEN"), nil)
	svc, err := NewService(client, repo)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	state := viewer.NewState(jobs.DefaultCriteria(10))
	req := state.Start()
	page, err := svc.ListJobs(ctx, req.Criteria)
	if err != nil {
		t.Fatalf("ListJobs returned error: %v", err)
	}
	state.OnPageLoaded(req, page)
	if len(state.Pages.Items) == 0 {
		t.Skip("no jobs available to validate integration")
	}

	job := state.Pages.Items[0]

	// Keep the remote state stable by restoring the flag before the test exits.
	wasSeen := job.Seen
	defer func() {
		restoreCtx, restoreCancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer restoreCancel()
		_, _ = svc.UpdateJob(restoreCtx, job.ID, jobs.FlagPatch(jobs.FlagSeen, wasSeen))
	}()

	updated, err := svc.UpdateJob(ctx, job.ID, jobs.FlagPatch(jobs.FlagSeen, !wasSeen))
	if err != nil {
		t.Fatalf("UpdateJob returned error: %v", err)
	}
	if updated.Seen == wasSeen {
		t.Fatalf("expected seen to change from %v", wasSeen)
	}

	more, ok := state.LoadMore()
	if !ok {
		return
	}
	next, err := svc.ListJobs(ctx, more.Criteria)
	if err != nil {
		t.Fatalf("ListJobs page 2 returned error: %v", err)
	}
	before := len(state.Pages.Items)
	state.OnPageLoaded(more, next)
	if len(state.Pages.Items) < before {
		t.Fatalf("expected load more size >= %d, got %d", before, len(state.Pages.Items))
	}
	seen := make(map[int64]bool, len(state.Pages.Items))
	for _, j := range state.Pages.Items {
		if seen[j.ID] {
			t.Fatalf("duplicate job %d after load more", j.ID)
		}
		seen[j.ID] = true
	}
}
