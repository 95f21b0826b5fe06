package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/teachforge-io/agent/internal/models"
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "Browse exercise sets",
}

var exercisesListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List your exercise sets",
	PreRunE: preRunAuthenticatedE,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		result, err := apiClient.ListExercises(commandContext(cmd), models.Page{Page: page, PageSize: pageSize})
		if err != nil {
			return err
		}

		fmt.Println(headerStyle.Render("Exercise Sets"))
		fmt.Println()

		if len(result.Items) == 0 {
			fmt.Println(infoStyle.Render("No exercise sets found"))
			return nil
		}

		for _, exercise := range result.Items {
			fmt.Printf("%4d  %s", exercise.ID, exercise.Title)
			if len(exercise.Subject) > 0 {
				fmt.Printf("  (%s)", exercise.Subject)
			}
			fmt.Println()
		}

		fmt.Println()
		fmt.Printf("Page %d/%d, %d total\n", result.Page, result.Pages, result.Total)
		return nil
	},
}

var exercisesGetCmd = &cobra.Command{
	Use:     "get <id>",
	Short:   "Show one exercise set as JSON",
	Args:    cobra.ExactArgs(1),
	PreRunE: preRunAuthenticatedE,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid exercise id: %s", args[0])
		}

		exercise, err := apiClient.GetExercise(commandContext(cmd), id)
		if err != nil {
			return err
		}

		return printJSON(exercise)
	},
}

func init() {
	exercisesListCmd.Flags().Int("page", 1, "Page number")
	exercisesListCmd.Flags().Int("page-size", 10, "Items per page (max 100)")

	exercisesCmd.AddCommand(exercisesListCmd)
	exercisesCmd.AddCommand(exercisesGetCmd)
	rootCmd.AddCommand(exercisesCmd)
}
