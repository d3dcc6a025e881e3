// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	notificationstore "github.com/civicworks/civicbridge/internal/app/store/notifications"
	"github.com/civicworks/civicbridge/internal/app/system/notify"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// notifyBus is created in Startup, consumed by BuildHandler, and
// drained in Shutdown.
var notifyBus *notify.Bus

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// CivicBridge starts the notification dispatcher here so that workflow
// engines built in BuildHandler can publish immediately.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	notifyBus = notify.NewBus(notificationstore.New(deps.MongoDatabase), logger, appCfg.NotifyBuffer)
	notifyBus.Start()
	logger.Info("notification bus started", zap.Int("buffer", appCfg.NotifyBuffer))
	return nil
}
