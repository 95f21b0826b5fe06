package models

import (
	"testing"
)

func TestTaskStatus_StatusToken(t *testing.T) {
	tests := []struct {
		name   string
		status TaskStatus
		want   string
	}{
		{
			name:   "task_status preferred over status",
			status: TaskStatus{"task_status": "SUCCESS", "status": "running"},
			want:   "SUCCESS",
		},
		{
			name:   "falls back to status",
			status: TaskStatus{"status": "completed"},
			want:   "completed",
		},
		{
			name:   "empty task_status falls through",
			status: TaskStatus{"task_status": "", "status": "running"},
			want:   "running",
		},
		{
			name:   "absent status is empty",
			status: TaskStatus{"progress": 10.0},
			want:   "",
		},
		{
			name:   "non-string status is ignored",
			status: TaskStatus{"status": 42.0},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.StatusToken(); got != tt.want {
				t.Errorf("StatusToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTaskStatus_State(t *testing.T) {
	tests := []struct {
		name   string
		status TaskStatus
		want   JobState
	}{
		{"lowercase completed succeeds", TaskStatus{"task_status": "completed"}, JobSucceeded},
		{"uppercase SUCCESS succeeds", TaskStatus{"task_status": "SUCCESS"}, JobSucceeded},
		{"lowercase failed fails", TaskStatus{"status": "failed"}, JobFailed},
		{"uppercase FAIL fails", TaskStatus{"task_status": "FAIL"}, JobFailed},
		// The token sets are case-sensitive: the lesson pipeline never
		// reports "COMPLETED" and the media pipeline never "success".
		{"COMPLETED is not terminal", TaskStatus{"status": "COMPLETED"}, JobRunning},
		{"success is not terminal", TaskStatus{"status": "success"}, JobRunning},
		{"unknown token still running", TaskStatus{"status": "PROCESSING"}, JobRunning},
		{"absent status still running", TaskStatus{}, JobRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.State(); got != tt.want {
				t.Errorf("State() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTaskStatus_Progress(t *testing.T) {
	tests := []struct {
		name   string
		status TaskStatus
		want   int
	}{
		{"float from json decode", TaskStatus{"progress": 42.0}, 42},
		{"absent defaults to zero", TaskStatus{}, 0},
		{"clamped above", TaskStatus{"progress": 250.0}, 100},
		{"clamped below", TaskStatus{"progress": -5.0}, 0},
		{"non-numeric defaults to zero", TaskStatus{"progress": "half"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Progress(); got != tt.want {
				t.Errorf("Progress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTaskStatus_Result(t *testing.T) {
	lessonFields := []string{"partial_lesson", "lesson"}

	t.Run("first candidate wins", func(t *testing.T) {
		status := TaskStatus{
			"partial_lesson": map[string]any{"title": "partial"},
			"lesson":         map[string]any{"title": "full"},
		}
		result, ok := status.Result(lessonFields)
		if !ok {
			t.Fatal("Expected a result")
		}
		if result.(map[string]any)["title"] != "partial" {
			t.Errorf("Expected partial_lesson to win, got %+v", result)
		}
	})

	t.Run("empty first candidate falls through", func(t *testing.T) {
		status := TaskStatus{
			"partial_lesson": map[string]any{},
			"lesson":         map[string]any{"title": "full"},
		}
		result, ok := status.Result(lessonFields)
		if !ok {
			t.Fatal("Expected a result")
		}
		if result.(map[string]any)["title"] != "full" {
			t.Errorf("Expected lesson fallback, got %+v", result)
		}
	})

	t.Run("string result", func(t *testing.T) {
		status := TaskStatus{"video_url": "https://cdn.example.com/v.mp4"}
		result, ok := status.Result([]string{"video_url"})
		if !ok || result != "https://cdn.example.com/v.mp4" {
			t.Errorf("Result() = %v, %v", result, ok)
		}
	})

	t.Run("empty string is not a result", func(t *testing.T) {
		status := TaskStatus{"video_url": ""}
		if _, ok := status.Result([]string{"video_url"}); ok {
			t.Error("Expected no result for an empty string field")
		}
	})

	t.Run("no candidates present", func(t *testing.T) {
		status := TaskStatus{"task_status": "SUCCESS"}
		if _, ok := status.Result(lessonFields); ok {
			t.Error("Expected no result when no candidate field is set")
		}
	})
}

func TestTaskStatus_ErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		status TaskStatus
		want   string
	}{
		{"error field", TaskStatus{"error": "model overloaded"}, "model overloaded"},
		{"detail fallback", TaskStatus{"detail": "bad input"}, "bad input"},
		{"message fallback", TaskStatus{"message": "boom"}, "boom"},
		{"error preferred", TaskStatus{"error": "E", "message": "M"}, "E"},
		{"absent", TaskStatus{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.ErrorMessage(); got != tt.want {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
