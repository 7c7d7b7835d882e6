package cmd

import (
	"org_diagnostics/internal/app"
	"org_diagnostics/internal/catalog"
	"org_diagnostics/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web form",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != "" {
			cfg.Server.Port = servePort
		}

		logger.InitLogger(cfg)
		defer logger.Log.Sync()

		// 目录错误直接终止启动
		catalogs, err := catalog.NewStore(catalog.NewLoader(), cfg.Catalog.Path)
		if err != nil {
			logger.Log.Error("Failed to load catalog", zap.Error(err))
			return err
		}

		application, err := app.NewApp(cfg, catalogs)
		if err != nil {
			logger.Log.Error("Failed to initialize app", zap.Error(err))
			return err
		}

		application.Run()
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (overrides server.port)")
}
