package cli

import (
	"elearning_backend/internal/config"
	"fmt"

	"github.com/spf13/cobra"
)

// NewNormalizeCmd 重写记录文件：补齐缺失列，去掉无法识别的列
func NewNormalizeCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Rewrite the record file with a full header and backfilled defaults",
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
			if err := repo.SaveAll(cmd.Context(), records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "normalized %d records in %s\n", len(records), cfg.Records.Object)
			return nil
		},
	}
}
