package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export progress to a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		orc, st, err := openOrchestrator(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		data, filename, err := orc.Export()
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		if out, _ := cmd.Flags().GetString("output"); out != "" {
			filename = out
		}
		if err := os.WriteFile(filename, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", filename, err)
		}

		fmt.Println("Exported to", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file path (default brain-sparks-<date>.json)")
}
