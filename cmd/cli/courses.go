package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/teachforge-io/agent/internal/models"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Manage courses",
}

var coursesListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List your courses",
	PreRunE: preRunAuthenticatedE,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		result, err := apiClient.ListCourses(commandContext(cmd), models.Page{Page: page, PageSize: pageSize})
		if err != nil {
			return err
		}

		fmt.Println(headerStyle.Render("Courses"))
		fmt.Println()

		if len(result.Items) == 0 {
			fmt.Println(infoStyle.Render("No courses found"))
			return nil
		}

		for _, course := range result.Items {
			fmt.Printf("%4d  %s", course.ID, course.Name)
			if len(course.Subject) > 0 {
				fmt.Printf("  (%s)", course.Subject)
			}
			fmt.Println()
		}

		fmt.Println()
		fmt.Printf("Page %d/%d, %d total\n", result.Page, result.Pages, result.Total)
		return nil
	},
}

var coursesGetCmd = &cobra.Command{
	Use:     "get <id>",
	Short:   "Show one course as JSON",
	Args:    cobra.ExactArgs(1),
	PreRunE: preRunAuthenticatedE,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid course id: %s", args[0])
		}

		course, err := apiClient.GetCourse(commandContext(cmd), id)
		if err != nil {
			return err
		}

		return printJSON(course)
	},
}

func init() {
	coursesListCmd.Flags().Int("page", 1, "Page number")
	coursesListCmd.Flags().Int("page-size", 10, "Items per page (max 100)")

	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesGetCmd)
	rootCmd.AddCommand(coursesCmd)
}
