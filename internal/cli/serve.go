package cli

import (
	"elearning_backend/internal/app"
	"elearning_backend/internal/config"
	"elearning_backend/pkg/logger"

	"github.com/spf13/cobra"
)

// NewServeCmd 启动 HTTP 服务
func NewServeCmd(configDir *string) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}

			logger.InitLogger(cfg)
			defer logger.Log.Sync()

			application, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			application.Run(*configDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides config)")
	return cmd
}
