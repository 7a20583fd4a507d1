package main

import (
	"fmt"
	"os"

	_ "storefront_bundles/docs"
	"storefront_bundles/internal/adapter/http/routes"
	"storefront_bundles/internal/infrastructure/config"
	"storefront_bundles/internal/infrastructure/logging"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Storefront Bundles API
// @version         1.0
// @description     Customizable bundle selection, bundle cart lines and checkout.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := routes.Run(cfg, logger); err != nil {
		logger.Error("failed to startup the application", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
