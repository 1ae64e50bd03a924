package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rewearhq/rewear-backend/internal/container"
	handlers "github.com/rewearhq/rewear-backend/internal/interface/http"
	"github.com/rewearhq/rewear-backend/internal/interface/middleware"
	"github.com/rewearhq/rewear-backend/pkg/helpers"
)

// AuthModule wires registration, OTP, login and profile routes.
// Public: POST /api/auth/send-otp, /api/auth/register, /api/auth/login
// Protected: GET /api/auth/user
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	sendOTPLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())

	rg.POST("/auth/send-otp", sendOTPLimiter, m.Handler.SendOTP)
	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/auth/user", m.Handler.Me)
	}
}
