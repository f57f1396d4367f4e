package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all stored progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Println("This erases all sessions, streaks and badges. Run again with --yes to confirm.")
			return nil
		}

		orc, st, err := openOrchestrator(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		orc.ResetAll()
		fmt.Println("All progress erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset without prompting")
}
