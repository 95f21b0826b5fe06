package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/teachforge-io/agent/internal/models"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "Manage lesson plans",
}

var lessonsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List your lesson plans",
	PreRunE: preRunAuthenticatedE,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		result, err := apiClient.ListLessons(commandContext(cmd), models.Page{Page: page, PageSize: pageSize})
		if err != nil {
			return err
		}

		fmt.Println(headerStyle.Render("Lesson Plans"))
		fmt.Println()

		if len(result.Items) == 0 {
			fmt.Println(infoStyle.Render("No lesson plans found"))
			return nil
		}

		for _, lesson := range result.Items {
			fmt.Printf("%4d  %s", lesson.ID, lesson.Title)
			if len(lesson.Subject) > 0 {
				fmt.Printf("  (%s", lesson.Subject)
				if len(lesson.Grade) > 0 {
					fmt.Printf(", %s", lesson.Grade)
				}
				fmt.Print(")")
			}
			fmt.Println()
		}

		fmt.Println()
		fmt.Printf("Page %d/%d, %d total\n", result.Page, result.Pages, result.Total)
		return nil
	},
}

var lessonsGetCmd = &cobra.Command{
	Use:     "get <id>",
	Short:   "Show one lesson plan as JSON",
	Args:    cobra.ExactArgs(1),
	PreRunE: preRunAuthenticatedE,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lesson id: %s", args[0])
		}

		lesson, err := apiClient.GetLesson(commandContext(cmd), id)
		if err != nil {
			return err
		}

		return printJSON(lesson)
	},
}

var lessonsCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create a blank lesson plan",
	PreRunE: preRunAuthenticatedE,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		subject, _ := cmd.Flags().GetString("subject")
		grade, _ := cmd.Flags().GetString("grade")

		if len(title) == 0 {
			return fmt.Errorf("--title is required")
		}

		lesson, err := apiClient.CreateLesson(commandContext(cmd), models.Lesson{
			Title:   title,
			Subject: subject,
			Grade:   grade,
		})
		if err != nil {
			return err
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Created lesson %d: %s", lesson.ID, lesson.Title)))
		return nil
	},
}

var lessonsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a lesson plan",
	Args:    cobra.ExactArgs(1),
	PreRunE: preRunAuthenticatedE,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lesson id: %s", args[0])
		}

		if err := apiClient.DeleteLesson(commandContext(cmd), id); err != nil {
			return err
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Deleted lesson %d", id)))
		return nil
	},
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	lessonsListCmd.Flags().Int("page", 1, "Page number")
	lessonsListCmd.Flags().Int("page-size", 10, "Items per page (max 100)")

	lessonsCreateCmd.Flags().String("title", "", "Lesson title")
	lessonsCreateCmd.Flags().String("subject", "", "Subject")
	lessonsCreateCmd.Flags().String("grade", "", "Grade level")

	lessonsCmd.AddCommand(lessonsListCmd)
	lessonsCmd.AddCommand(lessonsGetCmd)
	lessonsCmd.AddCommand(lessonsCreateCmd)
	lessonsCmd.AddCommand(lessonsDeleteCmd)
	rootCmd.AddCommand(lessonsCmd)
}
