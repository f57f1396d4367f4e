package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show training statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		orc, st, err := openOrchestrator(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		state := orc.State()
		fmt.Printf("Streak:    %d day(s), best %d\n", state.Streak.Current, state.Streak.Best)
		fmt.Printf("Badges:    %d unlocked\n", len(state.Badges))

		totals, err := st.Events().Totals(cmd.Context())
		if err != nil {
			return fmt.Errorf("load totals: %w", err)
		}
		fmt.Printf("Sessions:  %d played\n", totals.Sessions)
		if totals.Sessions > 0 {
			fmt.Printf("Best:      %d points\n", totals.BestScore)
			fmt.Printf("Average:   %d points\n", totals.ScoreSum/totals.Sessions)
			if totals.BestBrainAge > 0 {
				fmt.Printf("Brain age: %d at best\n", totals.BestBrainAge)
			}
		}

		recent, err := st.Events().Recent(cmd.Context(), 5)
		if err != nil {
			return fmt.Errorf("load recent sessions: %w", err)
		}
		if len(recent) > 0 {
			fmt.Println("\nRecent sessions:")
			for _, ev := range recent {
				fmt.Printf("  %s  score %4d  brain age %d\n", ev.Day, ev.TotalScore, ev.BrainAge)
			}
		}
		return nil
	},
}
