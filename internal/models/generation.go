package models

// LessonGenerateRequest submits a lesson generation job. Clarify carries the
// wizard's accumulated answers plus the chosen template.
type LessonGenerateRequest struct {
	Clarify LessonClarify `json:"clarify"`
}

type LessonClarify struct {
	Title      string `json:"title,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Grade      string `json:"grade,omitempty"`
	Duration   int    `json:"duration,omitempty"`
	Objectives string `json:"objectives,omitempty"`
	TemplateID int    `json:"template_id,omitempty"`
	SessionID  string `json:"session_id,omitempty"`
}

// ExerciseGenerateRequest submits an exercise generation job.
type ExerciseGenerateRequest struct {
	Subject       string `json:"subject,omitempty"`
	Grade         string `json:"grade,omitempty"`
	Topic         string `json:"topic"`
	QuestionCount int    `json:"question_count,omitempty"`
	Difficulty    string `json:"difficulty,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
}

// MediaGenerateRequest submits a video or image generation job from a free
// text prompt.
type MediaGenerateRequest struct {
	Prompt string `json:"prompt"`
}
