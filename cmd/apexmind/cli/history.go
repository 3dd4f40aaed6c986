package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/apexmind/internal/memory"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent coaching exchanges",
	Run: func(cmd *cobra.Command, args []string) {
		s := getStore()
		defer s.Close()

		history, err := memory.NewManager(s).RecentHistory(userID, historyLimit)
		if err != nil {
			fmt.Printf("Failed to load history: %v\n", err)
			os.Exit(1)
		}

		if len(history) == 0 {
			fmt.Println("No history yet.")
			return
		}
		for _, it := range history {
			fmt.Printf("[%s]\n", it.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Printf("  You:   %s\n", it.UserText)
			fmt.Printf("  Coach: %s\n\n", it.AgentText)
		}
	},
}

func init() {
	RootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of exchanges to show")
}
