package actions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
	"github.com/glabrego/jobtriage-cli/internal/storage"
	"github.com/glabrego/jobtriage-cli/internal/viewer"
)

type fakeService struct {
	listPage     jobs.Page
	listErr      error
	listDeadline time.Time
	listCriteria jobs.Criteria

	getJob jobs.Job
	getErr error

	updateJob      jobs.Job
	updateErr      error
	updateDeadline time.Time
	updatePatch    jobs.Patch

	createJob jobs.Job
	createErr error

	bulkCount    int
	bulkErr      error
	bulkDeadline time.Time
	bulkTarget   jobs.BulkTarget
	deleteCalled bool

	presets   []storage.Preset
	presetErr error
	history   []string
}

func (f *fakeService) ListJobs(ctx context.Context, criteria jobs.Criteria) (jobs.Page, error) {
	if dl, ok := ctx.Deadline(); ok {
		f.listDeadline = dl
	}
	f.listCriteria = criteria
	if f.listErr != nil {
		return jobs.Page{}, f.listErr
	}
	return f.listPage, nil
}

func (f *fakeService) GetJob(_ context.Context, id int64) (jobs.Job, error) {
	if f.getErr != nil {
		return jobs.Job{}, f.getErr
	}
	return f.getJob, nil
}

func (f *fakeService) UpdateJob(ctx context.Context, id int64, patch jobs.Patch) (jobs.Job, error) {
	if dl, ok := ctx.Deadline(); ok {
		f.updateDeadline = dl
	}
	f.updatePatch = patch
	if f.updateErr != nil {
		return jobs.Job{}, f.updateErr
	}
	return f.updateJob, nil
}

func (f *fakeService) CreateJob(_ context.Context, _ jobs.Patch) (jobs.Job, error) {
	if f.createErr != nil {
		return jobs.Job{}, f.createErr
	}
	return f.createJob, nil
}

func (f *fakeService) BulkUpdate(ctx context.Context, target jobs.BulkTarget, _ jobs.Patch) (int, error) {
	if dl, ok := ctx.Deadline(); ok {
		f.bulkDeadline = dl
	}
	f.bulkTarget = target
	if f.bulkErr != nil {
		return 0, f.bulkErr
	}
	return f.bulkCount, nil
}

func (f *fakeService) BulkDelete(ctx context.Context, target jobs.BulkTarget) (int, error) {
	if dl, ok := ctx.Deadline(); ok {
		f.bulkDeadline = dl
	}
	f.deleteCalled = true
	f.bulkTarget = target
	if f.bulkErr != nil {
		return 0, f.bulkErr
	}
	return f.bulkCount, nil
}

func (f *fakeService) SavePreset(_ context.Context, name string, criteria jobs.Criteria) ([]storage.Preset, error) {
	if f.presetErr != nil {
		return nil, f.presetErr
	}
	f.presets = append(f.presets, storage.Preset{Name: name, Criteria: criteria})
	return f.presets, nil
}

func (f *fakeService) RememberInput(_ context.Context, _ string, value string) ([]string, error) {
	f.history = append([]string{value}, f.history...)
	return f.history, nil
}

func TestLoadPageCmd(t *testing.T) {
	svc := &fakeService{listPage: jobs.Page{Items: []jobs.Job{{ID: 1}}, Total: 1}}
	c := jobs.DefaultCriteria(20)
	req := viewer.PageRequest{Key: c.QueryKey(), Criteria: c}

	msg := LoadPageCmd(svc, req)()
	loaded, ok := msg.(PageLoadedMsg)
	if !ok {
		t.Fatalf("expected PageLoadedMsg, got %T", msg)
	}
	if loaded.Req.Key != req.Key || len(loaded.Page.Items) != 1 {
		t.Fatalf("unexpected payload: %+v", loaded)
	}
	if svc.listDeadline.IsZero() {
		t.Fatal("expected list context deadline to be set")
	}
	if svc.listCriteria.QueryKey() != c.QueryKey() {
		t.Fatalf("unexpected criteria passed to service: %+v", svc.listCriteria)
	}
}

func TestUpdateJobCmd(t *testing.T) {
	svc := &fakeService{updateJob: jobs.Job{ID: 7, Seen: true}}
	msg := UpdateJobCmd(svc, viewer.UpdateRequest{ID: 7, Patch: jobs.FlagPatch(jobs.FlagSeen, true), Seq: 3})()
	updated, ok := msg.(JobUpdatedMsg)
	if !ok {
		t.Fatalf("expected JobUpdatedMsg, got %T", msg)
	}
	if updated.Job.ID != 7 || updated.Req.Seq != 3 || updated.Status != "Updated job #7" {
		t.Fatalf("unexpected update payload: %+v", updated)
	}
	if !svc.updatePatch.Flags[jobs.FlagSeen] {
		t.Fatalf("expected seen patch, got %+v", svc.updatePatch)
	}
	if svc.updateDeadline.IsZero() {
		t.Fatal("expected update context deadline to be set")
	}
}

func TestRunActionCmd(t *testing.T) {
	svc := &fakeService{bulkCount: 3}
	update := viewer.Action{
		Kind:   viewer.ActionBulkUpdate,
		Target: jobs.BulkTarget{IDs: []int64{1, 2, 3}},
		Patch:  jobs.FlagPatch(jobs.FlagSeen, true),
	}
	msg := RunActionCmd(svc, update)()
	done, ok := msg.(ActionDoneMsg)
	if !ok {
		t.Fatalf("expected ActionDoneMsg, got %T", msg)
	}
	if done.Count != 3 || done.Status != "Updated 3 jobs" || svc.deleteCalled {
		t.Fatalf("unexpected bulk update payload: %+v", done)
	}
	if svc.bulkDeadline.IsZero() {
		t.Fatal("expected bulk context deadline to be set")
	}

	svc.bulkCount = 1
	del := viewer.Action{Kind: viewer.ActionBulkDelete, Target: jobs.BulkTarget{IDs: []int64{9}}}
	msg = RunActionCmd(svc, del)()
	done, ok = msg.(ActionDoneMsg)
	if !ok || done.Status != "Deleted 1 job" || !svc.deleteCalled {
		t.Fatalf("unexpected bulk delete payload: %T %+v", msg, done)
	}
	if len(svc.bulkTarget.IDs) != 1 || svc.bulkTarget.IDs[0] != 9 {
		t.Fatalf("unexpected delete target: %+v", svc.bulkTarget)
	}
}

func TestFreshnessAndFetchCmds(t *testing.T) {
	svc := &fakeService{
		listPage: jobs.Page{Items: []jobs.Job{{ID: 4}, {ID: 5}}, Total: 2},
		getJob:   jobs.Job{ID: 12},
	}
	c := jobs.DefaultCriteria(20)
	msg := FreshnessCmd(svc, viewer.PageRequest{Key: c.QueryKey(), Criteria: c})()
	fresh, ok := msg.(FreshnessMsg)
	if !ok || len(fresh.Page.Items) != 2 {
		t.Fatalf("expected FreshnessMsg with 2 items, got %T %+v", msg, fresh)
	}

	msg = FetchJobCmd(svc, viewer.FetchRequest{ID: 12})()
	fetched, ok := msg.(JobFetchedMsg)
	if !ok || fetched.Job.ID != 12 {
		t.Fatalf("expected JobFetchedMsg for 12, got %T %+v", msg, fetched)
	}
}

func TestStoreCmds(t *testing.T) {
	svc := &fakeService{}
	msg := SavePresetCmd(svc, "remote", jobs.Criteria{Search: "remote"})()
	saved, ok := msg.(PresetsSavedMsg)
	if !ok || saved.Name != "remote" || len(saved.Presets) != 1 {
		t.Fatalf("unexpected preset payload: %T %+v", msg, saved)
	}

	msg = RememberInputCmd(svc, "search", "golang")()
	hist, ok := msg.(HistorySavedMsg)
	if !ok || hist.Key != "search" || hist.Values[0] != "golang" {
		t.Fatalf("unexpected history payload: %T %+v", msg, hist)
	}

	svc.presetErr = errors.New("disk full")
	if _, ok := SavePresetCmd(svc, "x", jobs.Criteria{})().(StoreErrorMsg); !ok {
		t.Fatal("expected StoreErrorMsg")
	}
}

func TestActionErrors(t *testing.T) {
	svc := &fakeService{
		listErr:   errors.New("list failed"),
		getErr:    errors.New("not found"),
		updateErr: errors.New("update failed"),
		createErr: errors.New("create failed"),
		bulkErr:   errors.New("bulk failed"),
	}
	req := viewer.PageRequest{Criteria: jobs.DefaultCriteria(20)}

	if _, ok := LoadPageCmd(svc, req)().(PageErrorMsg); !ok {
		t.Fatal("expected PageErrorMsg")
	}
	if _, ok := FreshnessCmd(svc, req)().(FreshnessErrorMsg); !ok {
		t.Fatal("expected FreshnessErrorMsg")
	}
	if msg, ok := FetchJobCmd(svc, viewer.FetchRequest{ID: 3})().(JobFetchErrorMsg); !ok || msg.ID != 3 {
		t.Fatal("expected JobFetchErrorMsg for id 3")
	}
	if msg, ok := UpdateJobCmd(svc, viewer.UpdateRequest{ID: 2})().(UpdateErrorMsg); !ok || msg.ID != 2 {
		t.Fatal("expected UpdateErrorMsg for id 2")
	}
	if _, ok := CreateJobCmd(svc, jobs.FieldPatch(jobs.FieldTitle, "SRE"))().(CreateErrorMsg); !ok {
		t.Fatal("expected CreateErrorMsg")
	}
	if _, ok := RunActionCmd(svc, viewer.Action{Kind: viewer.ActionBulkDelete})().(ActionErrorMsg); !ok {
		t.Fatal("expected ActionErrorMsg")
	}
	if _, ok := RunActionCmd(svc, viewer.Action{})().(ActionErrorMsg); !ok {
		t.Fatal("expected ActionErrorMsg for unknown kind")
	}
}

func TestPasteLinkCmd(t *testing.T) {
	msg := PasteLinkCmd(func() (string, error) { return "jobtriage://jobs?jobId=7", nil })()
	pasted, ok := msg.(LinkPastedMsg)
	if !ok || pasted.Location != "jobtriage://jobs?jobId=7" {
		t.Fatalf("unexpected paste payload: %T %+v", msg, pasted)
	}
	if _, ok := PasteLinkCmd(func() (string, error) { return "", errors.New("no clipboard") })().(OpenURLErrorMsg); !ok {
		t.Fatal("expected OpenURLErrorMsg when clipboard read fails")
	}
	if _, ok := PasteLinkCmd(nil)().(OpenURLErrorMsg); !ok {
		t.Fatal("expected OpenURLErrorMsg without clipboard")
	}
}

func TestOpenURLCmd_Fallbacks(t *testing.T) {
	msg := OpenURLCmd("https://example.com",
		func(string) error { return nil },
		func(string) error { return nil },
	)()
	success, ok := msg.(OpenURLSuccessMsg)
	if !ok || !success.Opened {
		t.Fatalf("expected opened success, got %T %+v", msg, success)
	}

	msg = OpenURLCmd("https://example.com",
		func(string) error { return errors.New("open failed") },
		func(string) error { return nil },
	)()
	success, ok = msg.(OpenURLSuccessMsg)
	if !ok || success.Opened {
		t.Fatalf("expected copy fallback success, got %T %+v", msg, success)
	}

	msg = OpenURLCmd("https://example.com",
		func(string) error { return errors.New("open failed") },
		func(string) error { return errors.New("copy failed") },
	)()
	if _, ok := msg.(OpenURLErrorMsg); !ok {
		t.Fatalf("expected OpenURLErrorMsg, got %T", msg)
	}
}

func TestCopyURLCmd(t *testing.T) {
	msg := CopyURLCmd("https://example.com", func(string) error { return nil })()
	if _, ok := msg.(OpenURLSuccessMsg); !ok {
		t.Fatalf("expected OpenURLSuccessMsg, got %T", msg)
	}
	msg = CopyURLCmd("https://example.com", func(string) error { return errors.New("copy failed") })()
	if _, ok := msg.(OpenURLErrorMsg); !ok {
		t.Fatalf("expected OpenURLErrorMsg, got %T", msg)
	}
}
