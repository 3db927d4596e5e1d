package cli

import (
	"context"
	"elearning_backend/internal/config"
	"elearning_backend/internal/repository"
	"elearning_backend/pkg/storage"
	"os"

	"github.com/spf13/cobra"
)

var configDir string

// Execute 运行命令行入口
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_DIR")
	if envConfig == "" {
		envConfig = "configs"
	}

	cmd := &cobra.Command{
		Use:           "elearning",
		Short:         "E-learning progress tracker with quizzes and Discord pass notifications",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&configDir, "config", envConfig, "directory containing config.yaml")
	cmd.AddCommand(NewServeCmd(&configDir))
	cmd.AddCommand(NewNormalizeCmd(&configDir))
	cmd.AddCommand(NewExportCmd(&configDir))
	cmd.AddCommand(NewBackupCmd(&configDir))
	return cmd
}

// openRecords 按配置打开记录文件，文件不存在时先建出表头
func openRecords(ctx context.Context, cfg *config.Config) (*repository.RecordRepository, storage.Provider, error) {
	provider, err := storage.NewProvider(&cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	repo := repository.NewRecordRepository(provider, cfg.Records.Object, cfg.Records.BaselineFields)
	if err := repo.Init(ctx); err != nil {
		return nil, nil, err
	}
	return repo, provider, nil
}
