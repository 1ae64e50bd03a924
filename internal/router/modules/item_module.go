package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rewearhq/rewear-backend/internal/container"
	repo "github.com/rewearhq/rewear-backend/internal/domain/repository"
	handlers "github.com/rewearhq/rewear-backend/internal/interface/http"
	"github.com/rewearhq/rewear-backend/internal/interface/middleware"
	"github.com/rewearhq/rewear-backend/pkg/helpers"
)

// ItemModule wires the catalog, approval and redemption routes.
// Public: GET /api/items, GET /api/items/search, GET /api/items/:id
// Protected: POST /api/items, GET /api/items/user, POST /api/items/redeem/:id
// Admin: GET /api/items/pending, PUT /api/items/approve/:id
type ItemModule struct {
	Handler *handlers.ItemHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewItemModule(h *handlers.ItemHandler, jwt *helpers.JWTManager, users repo.UserRepository) *ItemModule {
	return &ItemModule{Handler: h, JWT: jwt, Users: users}
}

func (m *ItemModule) Register(rg *gin.RouterGroup) {
	rg.GET("/items", m.Handler.List)
	rg.GET("/items/search", m.Handler.Search)
	rg.GET("/items/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/items", m.Handler.Create)
		auth.GET("/items/user", m.Handler.MyItems)

		redeemLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID())
		auth.POST("/items/redeem/:id", redeemLimiter, m.Handler.Redeem)

		admin := auth.Group("/")
		admin.Use(middleware.RequireAdmin(m.Users, container.GetLogger()))
		{
			admin.GET("/items/pending", m.Handler.Pending)
			admin.PUT("/items/approve/:id", m.Handler.Approve)
		}
	}
}
