package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/teachforge-io/agent/internal/models"
)

func pageQuery(page models.Page) map[string]string {
	args := map[string]string{}
	if page.Page > 0 {
		args["page"] = strconv.Itoa(page.Page)
	}
	if page.PageSize > 0 {
		args["page_size"] = strconv.Itoa(page.PageSize)
	}
	return args
}

func (c *Client) ListLessons(ctx context.Context, page models.Page) (*models.PagedLessons, error) {
	var result models.PagedLessons
	if err := c.do(ctx, http.MethodGet, "/lesson/list", nil, &result, withQuery(pageQuery(page))); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetLesson(ctx context.Context, id int) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/lesson/%d", id), nil, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (c *Client) CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	var created models.Lesson
	if err := c.do(ctx, http.MethodPost, "/lesson", lesson, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateLesson(ctx context.Context, id int, lesson models.Lesson) (*models.Lesson, error) {
	var updated models.Lesson
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/lesson/%d", id), lesson, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteLesson(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/lesson/%d", id), nil, nil)
}

func (c *Client) ListCourses(ctx context.Context, page models.Page) (*models.PagedCourses, error) {
	var result models.PagedCourses
	if err := c.do(ctx, http.MethodGet, "/course/list", nil, &result, withQuery(pageQuery(page))); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	var course models.Course
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/course/%d", id), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) CreateCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	var created models.Course
	if err := c.do(ctx, http.MethodPost, "/course", course, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Exercise records live under the /ai prefix, unlike lessons and courses.
func (c *Client) ListExercises(ctx context.Context, page models.Page) (*models.PagedExercises, error) {
	var result models.PagedExercises
	if err := c.do(ctx, http.MethodGet, "/ai/exercise/list", nil, &result, withQuery(pageQuery(page))); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetExercise(ctx context.Context, id int) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/ai/exercise/%d", id), nil, &exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}
