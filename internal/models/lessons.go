package models

import "time"

// Lesson is a lesson plan record. Content is the generated or hand-written
// lesson document; its internal structure is backend-defined so it stays an
// opaque JSON value.
type Lesson struct {
	ID        int       `json:"id,omitempty"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject,omitempty"`
	Grade     string    `json:"grade,omitempty"`
	Content   any       `json:"content,omitempty"`
	CourseID  int       `json:"course_id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Course groups lessons by subject and grade.
type Course struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Subject     string `json:"subject,omitempty"`
	Grade       string `json:"grade,omitempty"`
	Description string `json:"description,omitempty"`
}

// Exercise is a generated or curated exercise set.
type Exercise struct {
	ID        int       `json:"id,omitempty"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject,omitempty"`
	Questions any       `json:"questions,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Page holds the pagination parameters list endpoints accept. The backend
// caps page_size at 100.
type Page struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// PagedLessons is the paginated list envelope for lessons.
type PagedLessons struct {
	Items    []Lesson `json:"items"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	Pages    int      `json:"pages"`
}

// PagedCourses is the paginated list envelope for courses.
type PagedCourses struct {
	Items    []Course `json:"items"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	Pages    int      `json:"pages"`
}

// PagedExercises is the paginated list envelope for exercises.
type PagedExercises struct {
	Items    []Exercise `json:"items"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Pages    int        `json:"pages"`
}
