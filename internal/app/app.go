package app

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
	"github.com/glabrego/jobtriage-cli/internal/storage"
)

const (
	DefaultJobCacheSize = 512
	MaxHistory          = 50

	HistorySearch   = "search"
	HistoryComments = "comments"
)

type JobsClient interface {
	ListJobs(ctx context.Context, criteria jobs.Criteria) (jobs.Page, error)
	GetJob(ctx context.Context, id int64) (jobs.Job, error)
	UpdateJob(ctx context.Context, id int64, patch jobs.Patch) (jobs.Job, error)
	CreateJob(ctx context.Context, fields jobs.Patch) (jobs.Job, error)
	BulkUpdate(ctx context.Context, target jobs.BulkTarget, patch jobs.Patch) (int, error)
	BulkDelete(ctx context.Context, target jobs.BulkTarget) (int, error)
}

type Repository interface {
	LoadPresets(ctx context.Context) ([]storage.Preset, error)
	SavePresets(ctx context.Context, presets []storage.Preset) error
	History(ctx context.Context, key string) ([]string, error)
	SetHistory(ctx context.Context, key string, values []string) error
}

// Service sits between the TUI and the remote API. Jobs seen in list
// responses are cached by id so a deep link to a loaded job needs no
// extra request.
type Service struct {
	client JobsClient
	repo   Repository
	byID   *lru.Cache
}

func NewService(client JobsClient, repo Repository) (*Service, error) {
	cache, err := lru.New(DefaultJobCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create job cache: %w", err)
	}
	return &Service{client: client, repo: repo, byID: cache}, nil
}

func (s *Service) ListJobs(ctx context.Context, criteria jobs.Criteria) (jobs.Page, error) {
	page, err := s.client.ListJobs(ctx, criteria)
	if err != nil {
		return jobs.Page{}, fmt.Errorf("fetch jobs: %w", err)
	}
	for _, job := range page.Items {
		s.byID.Add(job.ID, job)
	}
	return page, nil
}

// GetJob returns the cached copy when one exists.
func (s *Service) GetJob(ctx context.Context, id int64) (jobs.Job, error) {
	if cached, ok := s.byID.Get(id); ok {
		return cached.(jobs.Job), nil
	}
	job, err := s.client.GetJob(ctx, id)
	if err != nil {
		return jobs.Job{}, fmt.Errorf("fetch job %d: %w", id, err)
	}
	s.byID.Add(job.ID, job)
	return job, nil
}

func (s *Service) UpdateJob(ctx context.Context, id int64, patch jobs.Patch) (jobs.Job, error) {
	s.byID.Remove(id)
	job, err := s.client.UpdateJob(ctx, id, patch)
	if err != nil {
		return jobs.Job{}, fmt.Errorf("update job %d: %w", id, err)
	}
	s.byID.Add(job.ID, job)
	return job, nil
}

func (s *Service) CreateJob(ctx context.Context, fields jobs.Patch) (jobs.Job, error) {
	job, err := s.client.CreateJob(ctx, fields)
	if err != nil {
		return jobs.Job{}, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

func (s *Service) BulkUpdate(ctx context.Context, target jobs.BulkTarget, patch jobs.Patch) (int, error) {
	s.forget(target)
	n, err := s.client.BulkUpdate(ctx, target, patch)
	if err != nil {
		return 0, fmt.Errorf("bulk update: %w", err)
	}
	return n, nil
}

func (s *Service) BulkDelete(ctx context.Context, target jobs.BulkTarget) (int, error) {
	s.forget(target)
	n, err := s.client.BulkDelete(ctx, target)
	if err != nil {
		return 0, fmt.Errorf("bulk delete: %w", err)
	}
	return n, nil
}

func (s *Service) forget(target jobs.BulkTarget) {
	if target.SelectAll {
		s.byID.Purge()
		return
	}
	for _, id := range target.IDs {
		s.byID.Remove(id)
	}
}

func (s *Service) Presets(ctx context.Context) ([]storage.Preset, error) {
	presets, err := s.repo.LoadPresets(ctx)
	if err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}
	return presets, nil
}

// SavePreset stores criteria under name, replacing a preset with the same
// name, and returns the stored list.
func (s *Service) SavePreset(ctx context.Context, name string, criteria jobs.Criteria) ([]storage.Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("preset name is required")
	}
	presets, err := s.Presets(ctx)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range presets {
		if presets[i].Name == name {
			presets[i].Criteria = criteria.Clone()
			replaced = true
		}
	}
	if !replaced {
		presets = append(presets, storage.Preset{Name: name, Criteria: criteria.Clone()})
	}

	if err := s.repo.SavePresets(ctx, presets); err != nil {
		return nil, fmt.Errorf("save presets: %w", err)
	}
	return presets, nil
}

func (s *Service) InputHistory(ctx context.Context, key string) ([]string, error) {
	values, err := s.repo.History(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s history: %w", key, err)
	}
	return values, nil
}

// RememberInput puts value at the front of the history for key.
func (s *Service) RememberInput(ctx context.Context, key, value string) ([]string, error) {
	value = strings.TrimSpace(value)
	history, err := s.InputHistory(ctx, key)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return history, nil
	}

	next := pushHistory(history, value)
	if err := s.repo.SetHistory(ctx, key, next); err != nil {
		return nil, fmt.Errorf("save %s history: %w", key, err)
	}
	return next, nil
}

func pushHistory(history []string, value string) []string {
	next := make([]string, 0, len(history)+1)
	next = append(next, value)
	for _, old := range history {
		if old == value {
			continue
		}
		if len(next) == MaxHistory {
			break
		}
		next = append(next, old)
	}
	return next
}
