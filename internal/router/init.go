package router

import (
	"github.com/rewearhq/rewear-backend/internal/application"
	"github.com/rewearhq/rewear-backend/internal/container"
	pginfra "github.com/rewearhq/rewear-backend/internal/infrastructure/postgres"
	"github.com/rewearhq/rewear-backend/internal/infrastructure/redisstore"
	handlers "github.com/rewearhq/rewear-backend/internal/interface/http"
	"github.com/rewearhq/rewear-backend/internal/router/modules"
)

// InitModules wires the application services from container singletons and
// registers every feature module. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	items := pginfra.NewItemRepository(pool)
	uow := pginfra.NewUnitOfWork(pool)
	otp := redisstore.NewOTPStore(container.GetRedis())

	// The rabbit publisher may be nil when the broker is down at startup;
	// services treat that as mail being unavailable.
	var pub application.Publisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	authSvc := application.NewAuthService(users, otp, pub, container.GetJWT(), logger,
		cfg.OTPTTL, cfg.StartingPoints, cfg.MailSendEnabled)
	itemSvc := application.NewItemService(items, container.GetGCS(), cfg.GCSBucket,
		container.GetES(), cfg.ESItemsIndex, logger)
	redemptionSvc := application.NewRedemptionService(uow, pub, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), container.GetJWT()))
	r.Add(modules.NewItemModule(handlers.NewItemHandler(itemSvc, redemptionSvc, logger), container.GetJWT(), users))
}
