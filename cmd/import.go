package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import progress from an exported JSON file",
	Long:  "Import replaces all stored progress with the contents of an export file. The file is validated first; nothing changes when it is rejected.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		orc, st, err := openOrchestrator(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := orc.Import(data); err != nil {
			return fmt.Errorf("import: %w", err)
		}

		state := orc.State()
		fmt.Printf("Imported %d session(s), streak %d day(s)\n",
			len(state.Sessions), state.Streak.Current)
		return nil
	},
}
