package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/apexmind/internal/apex"
	"github.com/felixgeelhaar/apexmind/internal/memory"
	"github.com/felixgeelhaar/apexmind/internal/trait"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the user's profile and apex state",
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		mgr := memory.NewManager(s)
		profile, err := mgr.Profile(userID)
		if err != nil {
			fmt.Printf("Failed to load profile: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("User: %s\n", profile.UserID)
		fmt.Printf("Sessions: %d\n", profile.Sessions)
		for _, name := range trait.Names() {
			fmt.Printf("  %-13s %6.1f\n", name, profile.Scores.Get(name))
		}

		progress := memory.EstimateProgress(profile)
		fmt.Printf("Progress: %s (avg %.1f)\n", progress.Tier, progress.AvgScore)

		state, err := apex.NewEngine(s).State(userID)
		if err != nil {
			fmt.Printf("Failed to load apex state: %v\n", err)
			os.Exit(1)
		}
		if state == nil {
			fmt.Println("\nNo apex state yet. Run a coaching turn first.")
			return
		}

		fmt.Println("\nApex state:")
		fmt.Printf("  Last session: %d\n", state.LastSession)
		fmt.Printf("  Momentum:     %+.3f\n", state.Momentum)
		fmt.Printf("  Volatility:   %.3f\n", state.Volatility)
		fmt.Printf("  Dominance:    %.3f\n", state.DominanceIndex)
		fmt.Printf("  Modes:        %s\n", strings.Join(state.Modes, ", "))
		fmt.Printf("  Focus arc:    %s\n", state.FocusArc.Arc)
	},
}

func init() {
	RootCmd.AddCommand(stateCmd)
}
