package models

import (
	"slices"
)

// JobState is the local lifecycle of an async generation job.
type JobState string

const (
	JobIdle      JobState = "idle"
	JobSubmitted JobState = "submitted"
	JobRunning   JobState = "running"
	JobSucceeded JobState = "succeeded"
	JobFailed    JobState = "failed"
)

// Terminal reports whether no further state change is expected.
func (s JobState) Terminal() bool {
	return s == JobSucceeded || s == JobFailed
}

// SubmitResponse is the synchronous response of every generation submit
// endpoint. Only the task identifier matters.
type SubmitResponse struct {
	TaskID string `json:"task_id"`
}

// Status tokens the backend reports. These are case-sensitive: the lesson
// pipeline reports lowercase "completed"/"failed" while the media pipeline
// reports uppercase "SUCCESS"/"FAIL".
var (
	successTokens = []string{"completed", "SUCCESS"}
	failureTokens = []string{"failed", "FAIL"}
)

// statusFieldCandidates is the ordered list of field names a status record
// may report its status under, consulted in priority order.
var statusFieldCandidates = []string{"task_status", "status"}

// errorFieldCandidates is the ordered list of field names a failed status
// record may carry its message under.
var errorFieldCandidates = []string{"error", "detail", "message"}

// TaskStatus is one raw poll response. The backend is inconsistent about
// field naming across endpoints, so the record is kept as a loose map and
// read through ordered candidate lists rather than a fixed struct.
type TaskStatus map[string]any

// StatusToken returns the raw status string, or "" if the record carries
// none (treated as still running by the poller).
func (t TaskStatus) StatusToken() string {
	for _, field := range statusFieldCandidates {
		if s, ok := t[field].(string); ok && len(s) > 0 {
			return s
		}
	}
	return ""
}

// State maps the raw status token onto the local job lifecycle. Unknown or
// absent tokens mean the job is still running.
func (t TaskStatus) State() JobState {
	token := t.StatusToken()
	switch {
	case slices.Contains(successTokens, token):
		return JobSucceeded
	case slices.Contains(failureTokens, token):
		return JobFailed
	default:
		return JobRunning
	}
}

// Progress returns the reported progress clamped to 0..100, defaulting to
// zero when absent. Numbers arrive as float64 from the JSON decoder.
func (t TaskStatus) Progress() int {
	raw, ok := t["progress"]
	if !ok {
		return 0
	}

	var progress int
	switch v := raw.(type) {
	case float64:
		progress = int(v)
	case int:
		progress = v
	default:
		return 0
	}

	return min(max(progress, 0), 100)
}

// ErrorMessage returns the backend-supplied failure message, or "" when the
// record carries none.
func (t TaskStatus) ErrorMessage() string {
	for _, field := range errorFieldCandidates {
		if s, ok := t[field].(string); ok && len(s) > 0 {
			return s
		}
	}
	return ""
}

// Result extracts the job artifact by consulting the endpoint's result field
// candidates in priority order and taking the first non-empty match.
func (t TaskStatus) Result(candidates []string) (any, bool) {
	for _, field := range candidates {
		value, ok := t[field]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if len(v) == 0 {
				continue
			}
		case map[string]any:
			if len(v) == 0 {
				continue
			}
		case []any:
			if len(v) == 0 {
				continue
			}
		}
		return value, true
	}
	return nil, false
}

// JobUpdate is one progress notification delivered while a job is polled.
// Terminal updates carry either the extracted result or a failure message.
type JobUpdate struct {
	TaskID   string
	State    JobState
	Progress int
	Result   any
	Err      error
}
