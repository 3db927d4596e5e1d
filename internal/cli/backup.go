package cli

import (
	"elearning_backend/internal/config"
	"elearning_backend/internal/service"
	"fmt"

	"github.com/spf13/cobra"
)

// NewBackupCmd 立即备份一次记录文件
func NewBackupCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Copy the record file to a timestamped backup object",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return err
			}
			repo, provider, err := openRecords(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			backup := service.NewBackupService(repo, provider, cfg.Records.Object, cfg.Backup.Prefix)
			name, err := backup.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backup written to %s\n", name)
			return nil
		},
	}
}
