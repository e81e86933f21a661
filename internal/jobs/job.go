package jobs

import (
	"encoding/json"
	"fmt"
	"time"
)

// Flag names a boolean status flag on a job. Flags are the only fields
// whose change can move a job in or out of a filtered view.
type Flag string

const (
	FlagSeen              Flag = "seen"
	FlagApplied           Flag = "applied"
	FlagDiscarded         Flag = "discarded"
	FlagIgnored           Flag = "ignored"
	FlagClosed            Flag = "closed"
	FlagFlagged           Flag = "flagged"
	FlagLiked             Flag = "liked"
	FlagInterview         Flag = "interview"
	FlagInterviewRejected Flag = "interview_rejected"
	FlagAIEnriched        Flag = "ai_enriched"
	FlagEasyApply         Flag = "easy_apply"
)

// AllFlags lists every status flag in display order.
var AllFlags = []Flag{
	FlagSeen,
	FlagApplied,
	FlagDiscarded,
	FlagIgnored,
	FlagClosed,
	FlagFlagged,
	FlagLiked,
	FlagInterview,
	FlagInterviewRejected,
	FlagAIEnriched,
	FlagEasyApply,
}

func ParseFlag(s string) (Flag, error) {
	for _, f := range AllFlags {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown status flag %q", s)
}

// Field names a free-text field that can be patched.
type Field string

const (
	FieldTitle       Field = "title"
	FieldCompany     Field = "company"
	FieldLocation    Field = "location"
	FieldURL         Field = "url"
	FieldSalary      Field = "salary"
	FieldDescription Field = "description"
	FieldComments    Field = "comments"
	FieldResume      Field = "resume"
)

// Job is the subset of job fields used by the app.
type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	URL         string    `json:"url"`
	Salary      string    `json:"salary"`
	Description string    `json:"description"`
	Comments    *string   `json:"comments"`
	Resume      *string   `json:"resume"`
	CreatedAt   time.Time `json:"created"`

	Seen              bool `json:"seen"`
	Applied           bool `json:"applied"`
	Discarded         bool `json:"discarded"`
	Ignored           bool `json:"ignored"`
	Closed            bool `json:"closed"`
	Flagged           bool `json:"flagged"`
	Liked             bool `json:"liked"`
	Interview         bool `json:"interview"`
	InterviewRejected bool `json:"interview_rejected"`
	AIEnriched        bool `json:"ai_enriched"`
	EasyApply         bool `json:"easy_apply"`
}

// Flag reports the value of a status flag.
func (j Job) Flag(f Flag) bool {
	if p := j.flagRef(f); p != nil {
		return *p
	}
	return false
}

// WithFlag returns a copy of j with the flag set to v.
func (j Job) WithFlag(f Flag, v bool) Job {
	if p := j.flagRef(f); p != nil {
		*p = v
	}
	return j
}

func (j *Job) flagRef(f Flag) *bool {
	switch f {
	case FlagSeen:
		return &j.Seen
	case FlagApplied:
		return &j.Applied
	case FlagDiscarded:
		return &j.Discarded
	case FlagIgnored:
		return &j.Ignored
	case FlagClosed:
		return &j.Closed
	case FlagFlagged:
		return &j.Flagged
	case FlagLiked:
		return &j.Liked
	case FlagInterview:
		return &j.Interview
	case FlagInterviewRejected:
		return &j.InterviewRejected
	case FlagAIEnriched:
		return &j.AIEnriched
	case FlagEasyApply:
		return &j.EasyApply
	}
	return nil
}

// Text returns the value of a free-text field. Nullable fields report
// the empty string when unset.
func (j Job) Text(f Field) string {
	switch f {
	case FieldTitle:
		return j.Title
	case FieldCompany:
		return j.Company
	case FieldLocation:
		return j.Location
	case FieldURL:
		return j.URL
	case FieldSalary:
		return j.Salary
	case FieldDescription:
		return j.Description
	case FieldComments:
		return deref(j.Comments)
	case FieldResume:
		return deref(j.Resume)
	}
	return ""
}

func (j Job) withText(f Field, v *string) Job {
	switch f {
	case FieldTitle:
		j.Title = deref(v)
	case FieldCompany:
		j.Company = deref(v)
	case FieldLocation:
		j.Location = deref(v)
	case FieldURL:
		j.URL = deref(v)
	case FieldSalary:
		j.Salary = deref(v)
	case FieldDescription:
		j.Description = deref(v)
	case FieldComments:
		j.Comments = cloneString(v)
	case FieldResume:
		j.Resume = cloneString(v)
	}
	return j
}

// Patch is a partial update. A nil entry in Fields clears a nullable
// field.
type Patch struct {
	Flags  map[Flag]bool
	Fields map[Field]*string
}

func FlagPatch(f Flag, v bool) Patch {
	return Patch{Flags: map[Flag]bool{f: v}}
}

func FieldPatch(f Field, v string) Patch {
	return Patch{Fields: map[Field]*string{f: &v}}
}

// TouchesFlags reports whether applying the patch can change filter
// membership.
func (p Patch) TouchesFlags() bool {
	return len(p.Flags) > 0
}

func (p Patch) Empty() bool {
	return len(p.Flags) == 0 && len(p.Fields) == 0
}

// Apply returns j with the patch applied.
func (p Patch) Apply(j Job) Job {
	for f, v := range p.Flags {
		j = j.WithFlag(f, v)
	}
	for f, v := range p.Fields {
		j = j.withText(f, v)
	}
	return j
}

func (p Patch) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Flags)+len(p.Fields))
	for f, v := range p.Flags {
		out[string(f)] = v
	}
	for f, v := range p.Fields {
		if v == nil {
			out[string(f)] = nil
			continue
		}
		out[string(f)] = *v
	}
	return json.Marshal(out)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
