package cli

import (
	"elearning_backend/internal/config"
	"elearning_backend/pkg/export"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewExportCmd 导出进度表为 xlsx
func NewExportCmd(configDir *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all learner records to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return err
			}
			repo, _, err := openRecords(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			records, err := repo.LoadAll(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := export.WriteWorkbook(f, records); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d records to %s\n", len(records), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "progress.xlsx", "output file")
	return cmd
}
