package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
	"github.com/glabrego/jobtriage-cli/internal/storage"
	"github.com/glabrego/jobtriage-cli/internal/viewer"
)

type Service interface {
	ListJobs(ctx context.Context, criteria jobs.Criteria) (jobs.Page, error)
	GetJob(ctx context.Context, id int64) (jobs.Job, error)
	UpdateJob(ctx context.Context, id int64, patch jobs.Patch) (jobs.Job, error)
	CreateJob(ctx context.Context, fields jobs.Patch) (jobs.Job, error)
	BulkUpdate(ctx context.Context, target jobs.BulkTarget, patch jobs.Patch) (int, error)
	BulkDelete(ctx context.Context, target jobs.BulkTarget) (int, error)
	SavePreset(ctx context.Context, name string, criteria jobs.Criteria) ([]storage.Preset, error)
	RememberInput(ctx context.Context, key, value string) ([]string, error)
}

type PageLoadedMsg struct {
	Req      viewer.PageRequest
	Page     jobs.Page
	Duration time.Duration
}

type PageErrorMsg struct {
	Req      viewer.PageRequest
	Err      error
	Duration time.Duration
}

type JobFetchedMsg struct {
	Job jobs.Job
}

type JobFetchErrorMsg struct {
	ID  int64
	Err error
}

type JobUpdatedMsg struct {
	Req    viewer.UpdateRequest
	Job    jobs.Job
	Status string
}

type UpdateErrorMsg struct {
	Req viewer.UpdateRequest
	ID  int64
	Err error
}

type ActionDoneMsg struct {
	Action viewer.Action
	Count  int
	Status string
}

type ActionErrorMsg struct {
	Action viewer.Action
	Err    error
}

type JobCreatedMsg struct {
	Job jobs.Job
}

type CreateErrorMsg struct {
	Err error
}

type FreshnessMsg struct {
	Req  viewer.PageRequest
	Page jobs.Page
}

type FreshnessErrorMsg struct {
	Req viewer.PageRequest
	Err error
}

type PresetsSavedMsg struct {
	Name    string
	Presets []storage.Preset
}

type HistorySavedMsg struct {
	Key    string
	Values []string
}

// StoreErrorMsg reports a failed write to the local store.
type StoreErrorMsg struct {
	Err error
}

type LinkPastedMsg struct {
	Location string
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

func LoadPageCmd(service Service, req viewer.PageRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		start := time.Now()

		page, err := service.ListJobs(ctx, req.Criteria)
		if err != nil {
			return PageErrorMsg{Req: req, Err: err, Duration: time.Since(start)}
		}
		return PageLoadedMsg{Req: req, Page: page, Duration: time.Since(start)}
	}
}

func FetchJobCmd(service Service, req viewer.FetchRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		job, err := service.GetJob(ctx, req.ID)
		if err != nil {
			return JobFetchErrorMsg{ID: req.ID, Err: err}
		}
		return JobFetchedMsg{Job: job}
	}
}

func UpdateJobCmd(service Service, req viewer.UpdateRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		job, err := service.UpdateJob(ctx, req.ID, req.Patch)
		if err != nil {
			return UpdateErrorMsg{Req: req, ID: req.ID, Err: err}
		}
		return JobUpdatedMsg{Req: req, Job: job, Status: fmt.Sprintf("Updated job #%d", job.ID)}
	}
}

// RunActionCmd executes a confirmed bulk action.
func RunActionCmd(service Service, action viewer.Action) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		switch action.Kind {
		case viewer.ActionBulkUpdate:
			n, err := service.BulkUpdate(ctx, action.Target, action.Patch)
			if err != nil {
				return ActionErrorMsg{Action: action, Err: err}
			}
			return ActionDoneMsg{Action: action, Count: n, Status: fmt.Sprintf("Updated %d %s", n, plural(n))}
		case viewer.ActionBulkDelete:
			n, err := service.BulkDelete(ctx, action.Target)
			if err != nil {
				return ActionErrorMsg{Action: action, Err: err}
			}
			return ActionDoneMsg{Action: action, Count: n, Status: fmt.Sprintf("Deleted %d %s", n, plural(n))}
		}
		return ActionErrorMsg{Action: action, Err: fmt.Errorf("unknown action kind %d", action.Kind)}
	}
}

func CreateJobCmd(service Service, fields jobs.Patch) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		job, err := service.CreateJob(ctx, fields)
		if err != nil {
			return CreateErrorMsg{Err: err}
		}
		return JobCreatedMsg{Job: job}
	}
}

// FreshnessCmd fetches page 1 of the active criteria to count new jobs.
func FreshnessCmd(service Service, req viewer.PageRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		page, err := service.ListJobs(ctx, req.Criteria)
		if err != nil {
			return FreshnessErrorMsg{Req: req, Err: err}
		}
		return FreshnessMsg{Req: req, Page: page}
	}
}

func SavePresetCmd(service Service, name string, criteria jobs.Criteria) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		presets, err := service.SavePreset(ctx, name, criteria)
		if err != nil {
			return StoreErrorMsg{Err: err}
		}
		return PresetsSavedMsg{Name: name, Presets: presets}
	}
}

func RememberInputCmd(service Service, key, value string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		values, err := service.RememberInput(ctx, key, value)
		if err != nil {
			return StoreErrorMsg{Err: err}
		}
		return HistorySavedMsg{Key: key, Values: values}
	}
}

func PasteLinkCmd(readFn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		if readFn == nil {
			return OpenURLErrorMsg{Err: fmt.Errorf("clipboard is not available")}
		}
		text, err := readFn()
		if err != nil {
			return OpenURLErrorMsg{Err: fmt.Errorf("read clipboard: %w", err)}
		}
		return LinkPastedMsg{Location: text}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened posting in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Link copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy link to clipboard")}
	}
}

func plural(n int) string {
	if n == 1 {
		return "job"
	}
	return "jobs"
}
