package viewer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/glabrego/jobtriage-cli/internal/jobs"
)

// ErrConfirmationOpen is returned when a confirmation is requested while
// another one is still waiting for an answer.
var ErrConfirmationOpen = errors.New("another action is waiting for confirmation")

// ErrNothingSelected is returned for a bulk action without a target.
var ErrNothingSelected = errors.New("no jobs selected")

// ActionKind is the kind of a confirmed mutation.
type ActionKind int

const (
	ActionBulkUpdate ActionKind = iota + 1
	ActionBulkDelete
)

// Action is a mutation that only runs once confirmed.
type Action struct {
	Kind   ActionKind
	Target jobs.BulkTarget
	Patch  jobs.Patch
}

// Confirmation asks the user before running Action.
type Confirmation struct {
	Message string
	Action  Action
}

// UpdateRequest is a single-job PATCH the controller must issue. Seq
// ties the response back to the request; it is handed to
// OnRecordUpdated and OnUpdateFailed unchanged.
type UpdateRequest struct {
	ID    int64
	Patch jobs.Patch
	Seq   int
}

// Mutations gates destructive and bulk actions behind a single open
// confirmation and carries the last mutation error.
type Mutations struct {
	Err error

	open *Confirmation
}

// Request opens a confirmation. Only one may be open at a time.
func (m *Mutations) Request(c Confirmation) error {
	if m.open != nil {
		return ErrConfirmationOpen
	}
	if c.Action.Target.Empty() {
		return ErrNothingSelected
	}
	m.open = &c
	return nil
}

// Pending returns the open confirmation.
func (m Mutations) Pending() (Confirmation, bool) {
	if m.open == nil {
		return Confirmation{}, false
	}
	return *m.open, true
}

// Confirm closes the open confirmation and hands back its action.
func (m *Mutations) Confirm() (Action, bool) {
	if m.open == nil {
		return Action{}, false
	}
	action := m.open.Action
	m.open = nil
	return action, true
}

// Cancel closes the open confirmation; its action never runs.
func (m *Mutations) Cancel() {
	m.open = nil
}

// DismissError clears the last mutation error.
func (m *Mutations) DismissError() {
	m.Err = nil
}

func describeTarget(t jobs.BulkTarget, total int) string {
	if t.SelectAll {
		return fmt.Sprintf("all %d matching jobs", total)
	}
	if len(t.IDs) == 1 {
		return fmt.Sprintf("job #%d", t.IDs[0])
	}
	return fmt.Sprintf("%d selected jobs", len(t.IDs))
}

// describePatch lists the changes in a stable order: flags as in
// jobs.AllFlags, then fields by name.
func describePatch(p jobs.Patch) string {
	parts := make([]string, 0, len(p.Flags)+len(p.Fields))
	for _, f := range jobs.AllFlags {
		v, ok := p.Flags[f]
		if !ok {
			continue
		}
		if v {
			parts = append(parts, "mark "+string(f))
		} else {
			parts = append(parts, "unmark "+string(f))
		}
	}
	fields := make([]string, 0, len(p.Fields))
	for f := range p.Fields {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	for _, f := range fields {
		parts = append(parts, "edit "+f)
	}
	if len(parts) == 0 {
		return "update"
	}
	return strings.Join(parts, ", ")
}
