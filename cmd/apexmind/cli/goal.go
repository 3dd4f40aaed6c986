package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/apexmind/internal/memory"
)

var goalCategory string

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage long-term goals",
}

var goalAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a goal to the user's profile",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		text := args[0]
		for _, a := range args[1:] {
			text += " " + a
		}

		goal, err := memory.NewManager(s).AddGoal(userID, text, goalCategory)
		if err != nil {
			fmt.Printf("Failed to add goal: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added %s: %s\n", goal.ID, goal.Text)
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the user's goals",
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		profile, err := memory.NewManager(s).Profile(userID)
		if err != nil {
			fmt.Printf("Failed to load profile: %v\n", err)
			os.Exit(1)
		}

		if len(profile.Goals) == 0 {
			fmt.Println("No goals yet.")
			return
		}
		for _, g := range profile.Goals {
			if g.Category != "" {
				fmt.Printf("%s [%s] %s\n", g.ID, g.Category, g.Text)
			} else {
				fmt.Printf("%s %s\n", g.ID, g.Text)
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalAddCmd.Flags().StringVarP(&goalCategory, "category", "c", "", "Goal category")
}
