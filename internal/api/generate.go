package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/teachforge-io/agent/internal/models"
)

// GenerateTimeout is the per-call timeout for generation submits, which can
// take noticeably longer than a normal request before the backend answers
// with a task identifier. Status polls stay on the default timeout.
const GenerateTimeout = 120 * time.Second

// GenerationKind selects one of the backend's long-running AI pipelines.
type GenerationKind string

const (
	GenerateLesson   GenerationKind = "lesson"
	GenerateExercise GenerationKind = "exercise"
	GenerateVideo    GenerationKind = "video"
	GenerateImage    GenerationKind = "image"
)

// generationEndpoint describes one pipeline's wire contract. The backend is
// inconsistent across pipelines: the job identifier is passed as a query
// parameter on some status endpoints and as a path segment on others, and
// the result payload field differs per pipeline. Each quirk is recorded here
// once instead of at the call sites.
type generationEndpoint struct {
	submitPath string
	statusPath string   // printf form taking the task id, or ""
	statusArg  string   // query parameter name for the task id, or ""
	results    []string // ordered result field candidates, first non-empty wins
}

var generationEndpoints = map[GenerationKind]generationEndpoint{
	GenerateLesson: {
		submitPath: "/ai/lesson/generate",
		statusPath: "/ai/lesson/generate/status",
		statusArg:  "task_id",
		results:    []string{"partial_lesson", "lesson"},
	},
	GenerateExercise: {
		submitPath: "/ai/exercise/generate",
		statusPath: "/ai/exercise/generate/status",
		statusArg:  "task_id",
		results:    []string{"exercises", "result"},
	},
	GenerateVideo: {
		submitPath: "/media/video/generate",
		statusPath: "/media/video/status/%s",
		results:    []string{"video_url"},
	},
	GenerateImage: {
		submitPath: "/media/image/generate",
		statusPath: "/media/image/status/%s",
		results:    []string{"image_url", "url"},
	},
}

// ResultFields returns the ordered result field candidates for a pipeline.
func ResultFields(kind GenerationKind) []string {
	return generationEndpoints[kind].results
}

// SubmitGeneration starts a long-running generation job and returns its task
// identifier. The job itself finishes later; poll GenerationStatus for it.
// The submit runs under GenerateTimeout unless a CallTimeout option
// overrides it.
func (c *Client) SubmitGeneration(ctx context.Context, kind GenerationKind, body any, opts ...CallOption) (string, error) {
	endpoint, ok := generationEndpoints[kind]
	if !ok {
		return "", fmt.Errorf("unknown generation kind: %s", kind)
	}

	callOpts := append([]CallOption{CallTimeout(GenerateTimeout)}, opts...)

	var resp models.SubmitResponse
	err := c.do(ctx, http.MethodPost, endpoint.submitPath, body, &resp, callOpts...)
	if err != nil {
		return "", err
	}

	if len(resp.TaskID) == 0 {
		return "", fmt.Errorf("generation submit returned no task identifier")
	}

	return resp.TaskID, nil
}

// GenerationStatus queries one job's current status record.
func (c *Client) GenerationStatus(ctx context.Context, kind GenerationKind, taskID string) (models.TaskStatus, error) {
	endpoint, ok := generationEndpoints[kind]
	if !ok {
		return nil, fmt.Errorf("unknown generation kind: %s", kind)
	}

	var status models.TaskStatus
	var err error

	if len(endpoint.statusArg) > 0 {
		err = c.do(ctx, http.MethodGet, endpoint.statusPath, nil, &status,
			withQuery(map[string]string{endpoint.statusArg: taskID}))
	} else {
		err = c.do(ctx, http.MethodGet, fmt.Sprintf(endpoint.statusPath, taskID), nil, &status)
	}

	if err != nil {
		return nil, err
	}
	return status, nil
}
