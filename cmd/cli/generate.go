package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teachforge-io/agent/internal/api"
	"github.com/teachforge-io/agent/internal/models"
	"github.com/teachforge-io/agent/internal/poller"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run AI generation jobs",
	Long: `Submits a long-running AI generation job to the TeachForge server and
polls its status until it finishes. Press q to stop watching; the job keeps
running on the server and can not be cancelled remotely.`,
}

// runGeneration submits one job and watches it to a terminal state. The
// returned update is terminal unless the user stopped watching early.
func runGeneration(cmd *cobra.Command, kind api.GenerationKind, label string, body any) (models.JobUpdate, error) {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	job := poller.New(
		func(ctx context.Context) (string, error) {
			return apiClient.SubmitGeneration(ctx, kind, body, api.CallTimeout(cfg.GetGenerateTimeout()))
		},
		func(ctx context.Context, taskID string) (models.TaskStatus, error) {
			return apiClient.GenerationStatus(ctx, kind, taskID)
		},
		cfg.PollerOptions(api.ResultFields(kind)),
	)

	taskID, err := job.Start(ctx)
	if err != nil {
		fmt.Println(errorStyle.Render("Failed to submit job"))
		return models.JobUpdate{}, err
	}

	fmt.Println(infoStyle.Render(fmt.Sprintf("Job submitted: %s", taskID)))

	final, err := runGenerationTUI(job, label)
	if err != nil {
		return final, err
	}

	switch final.State {
	case models.JobSucceeded:
		fmt.Println(successStyle.Render(fmt.Sprintf("%s finished", label)))
	case models.JobFailed:
		fmt.Println(errorStyle.Render(fmt.Sprintf("%s failed", label)))
		if final.Err != nil {
			return final, final.Err
		}
		return final, fmt.Errorf("generation failed")
	default:
		fmt.Println(warningStyle.Render("Stopped watching. The job is still running on the server."))
		fmt.Printf("Task id: %s\n", taskID)
	}

	return final, nil
}

var generateLessonCmd = &cobra.Command{
	Use:     "lesson",
	Short:   "Generate a lesson plan",
	PreRunE: preRunAuthenticatedE,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		subject, _ := cmd.Flags().GetString("subject")
		grade, _ := cmd.Flags().GetString("grade")
		duration, _ := cmd.Flags().GetInt("duration")
		objectives, _ := cmd.Flags().GetString("objectives")
		save, _ := cmd.Flags().GetBool("save")

		if len(title) == 0 {
			return fmt.Errorf("--title is required")
		}

		body := models.LessonGenerateRequest{
			Clarify: models.LessonClarify{
				Title:      title,
				Subject:    subject,
				Grade:      grade,
				Duration:   duration,
				Objectives: objectives,
			},
		}

		final, err := runGeneration(cmd, api.GenerateLesson, "Lesson generation", body)
		if err != nil || final.State != models.JobSucceeded {
			return err
		}

		if save {
			lesson, err := apiClient.CreateLesson(commandContext(cmd), models.Lesson{
				Title:   title,
				Subject: subject,
				Grade:   grade,
				Content: final.Result,
			})
			if err != nil {
				fmt.Println(errorStyle.Render("Generated, but saving the lesson failed"))
				return err
			}
			fmt.Println(successStyle.Render(fmt.Sprintf("Saved as lesson %d", lesson.ID)))
			return nil
		}

		return printJSON(final.Result)
	},
}

var generateExerciseCmd = &cobra.Command{
	Use:     "exercise",
	Short:   "Generate an exercise set",
	PreRunE: preRunAuthenticatedE,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		subject, _ := cmd.Flags().GetString("subject")
		grade, _ := cmd.Flags().GetString("grade")
		count, _ := cmd.Flags().GetInt("count")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		if len(topic) == 0 {
			return fmt.Errorf("--topic is required")
		}

		body := models.ExerciseGenerateRequest{
			Topic:         topic,
			Subject:       subject,
			Grade:         grade,
			QuestionCount: count,
			Difficulty:    difficulty,
		}

		final, err := runGeneration(cmd, api.GenerateExercise, "Exercise generation", body)
		if err != nil || final.State != models.JobSucceeded {
			return err
		}

		return printJSON(final.Result)
	},
}

var generateVideoCmd = &cobra.Command{
	Use:     "video [prompt]",
	Short:   "Generate a video from a prompt",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: preRunAuthenticatedE,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.TrimSpace(strings.Join(args, " "))
		if len(prompt) == 0 {
			return fmt.Errorf("a prompt is required")
		}

		final, err := runGeneration(cmd, api.GenerateVideo, "Video generation", models.MediaGenerateRequest{Prompt: prompt})
		if err != nil || final.State != models.JobSucceeded {
			return err
		}

		if url, ok := final.Result.(string); ok {
			fmt.Printf("Video URL: %s\n", url)
			return nil
		}
		return printJSON(final.Result)
	},
}

var generateImageCmd = &cobra.Command{
	Use:     "image [prompt]",
	Short:   "Generate an image from a prompt",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: preRunAuthenticatedE,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.TrimSpace(strings.Join(args, " "))
		if len(prompt) == 0 {
			return fmt.Errorf("a prompt is required")
		}

		final, err := runGeneration(cmd, api.GenerateImage, "Image generation", models.MediaGenerateRequest{Prompt: prompt})
		if err != nil || final.State != models.JobSucceeded {
			return err
		}

		if url, ok := final.Result.(string); ok {
			fmt.Printf("Image URL: %s\n", url)
			return nil
		}
		return printJSON(final.Result)
	},
}

func init() {
	generateLessonCmd.Flags().String("title", "", "Lesson title")
	generateLessonCmd.Flags().String("subject", "", "Subject")
	generateLessonCmd.Flags().String("grade", "", "Grade level")
	generateLessonCmd.Flags().Int("duration", 0, "Lesson duration in minutes")
	generateLessonCmd.Flags().String("objectives", "", "Learning objectives")
	generateLessonCmd.Flags().Bool("save", false, "Save the generated lesson when finished")

	generateExerciseCmd.Flags().String("topic", "", "Exercise topic")
	generateExerciseCmd.Flags().String("subject", "", "Subject")
	generateExerciseCmd.Flags().String("grade", "", "Grade level")
	generateExerciseCmd.Flags().Int("count", 0, "Number of questions")
	generateExerciseCmd.Flags().String("difficulty", "", "Difficulty (easy, medium, hard)")

	generateCmd.AddCommand(generateLessonCmd)
	generateCmd.AddCommand(generateExerciseCmd)
	generateCmd.AddCommand(generateVideoCmd)
	generateCmd.AddCommand(generateImageCmd)
	rootCmd.AddCommand(generateCmd)
}
