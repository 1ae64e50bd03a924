package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewearhq/rewear-backend/internal/application"
	"github.com/rewearhq/rewear-backend/internal/domain/entity"
	"github.com/rewearhq/rewear-backend/internal/infrastructure/memory"
	handlers "github.com/rewearhq/rewear-backend/internal/interface/http"
	"github.com/rewearhq/rewear-backend/internal/interface/middleware"
	"github.com/rewearhq/rewear-backend/pkg/helpers"
	"github.com/rewearhq/rewear-backend/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	m.Run()
}

type fixture struct {
	engine *gin.Engine
	store  *memory.Store
	otp    *memory.OTPStore
	jwt    *helpers.JWTManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := memory.NewStore()
	otp := memory.NewOTPStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	authSvc := application.NewAuthService(store.Users(), otp, nil, jwt, logger, 10*time.Minute, 50, false)
	itemSvc := application.NewItemService(store.Items(), nil, "", nil, "", logger)
	redemptionSvc := application.NewRedemptionService(store, nil, logger)

	ah := handlers.NewAuthHandler(authSvc, logger)
	ih := handlers.NewItemHandler(itemSvc, redemptionSvc, logger)

	r := gin.New()
	api := r.Group("/api")

	api.POST("/auth/send-otp", ah.SendOTP)
	api.POST("/auth/register", ah.Register)
	api.POST("/auth/login", ah.Login)
	api.GET("/items", ih.List)
	api.GET("/items/:id", ih.Get)

	authed := api.Group("/")
	authed.Use(middleware.Auth(jwt))
	authed.GET("/auth/user", ah.Me)
	authed.POST("/items", ih.Create)
	authed.GET("/items/user", ih.MyItems)
	authed.POST("/items/redeem/:id", ih.Redeem)

	admin := authed.Group("/")
	admin.Use(middleware.RequireAdmin(store.Users(), logger))
	admin.GET("/items/pending", ih.Pending)
	admin.PUT("/items/approve/:id", ih.Approve)

	return &fixture{engine: r, store: store, otp: otp, jwt: jwt}
}

func (f *fixture) token(t *testing.T, userID string) string {
	t.Helper()
	token, _, err := f.jwt.GenerateToken(userID)
	require.NoError(t, err)
	return token
}

func (f *fixture) user(t *testing.T, name, role string, points int64) *entity.User {
	t.Helper()
	u := &entity.User{Name: name, Email: name + "@example.com", PasswordHash: "x", Points: points, Role: role}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func (f *fixture) item(t *testing.T, ownerID string, price int64, approved bool) *entity.Item {
	t.Helper()
	it := &entity.Item{OwnerID: ownerID, Title: "Denim Jacket", Price: price, Status: entity.StatusAvailable, Approved: approved}
	require.NoError(t, f.store.Items().Create(context.Background(), it))
	return it
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestRedeemEndpoint(t *testing.T) {
	f := newFixture(t)
	seller := f.user(t, "seller", entity.RoleMember, 50)
	buyer := f.user(t, "buyer", entity.RoleMember, 50)
	item := f.item(t, seller.ID, 20, true)

	w, env := f.do(t, http.MethodPost, "/api/items/redeem/"+item.ID, f.token(t, buyer.ID), gin.H{"type": "redeem"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "redeem successful", env.Message)

	var receipt application.RedemptionReceipt
	require.NoError(t, json.Unmarshal(env.Data, &receipt))
	assert.Equal(t, int64(30), receipt.BuyerBalance)
	assert.Equal(t, int64(70), receipt.SellerBalance)
	assert.Equal(t, entity.StatusRedeemed, receipt.ItemStatus)
}

func TestRedeemEndpointInvalidAction(t *testing.T) {
	f := newFixture(t)
	seller := f.user(t, "seller", entity.RoleMember, 50)
	buyer := f.user(t, "buyer", entity.RoleMember, 50)
	item := f.item(t, seller.ID, 20, true)

	w, env := f.do(t, http.MethodPost, "/api/items/redeem/"+item.ID, f.token(t, buyer.ID), gin.H{"type": "swap"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid action type", env.Message)
}

func TestRedeemEndpointMalformedID(t *testing.T) {
	f := newFixture(t)
	buyer := f.user(t, "buyer", entity.RoleMember, 50)

	w, env := f.do(t, http.MethodPost, "/api/items/redeem/not-a-uuid", f.token(t, buyer.ID), gin.H{"type": "redeem"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "malformed item id", env.Message)
}

func TestRedeemEndpointRequiresAuth(t *testing.T) {
	f := newFixture(t)
	seller := f.user(t, "seller", entity.RoleMember, 50)
	item := f.item(t, seller.ID, 20, true)

	w, _ := f.do(t, http.MethodPost, "/api/items/redeem/"+item.ID, "", gin.H{"type": "redeem"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRedeemEndpointInsufficientPoints(t *testing.T) {
	f := newFixture(t)
	seller := f.user(t, "seller", entity.RoleMember, 50)
	buyer := f.user(t, "buyer", entity.RoleMember, 10)
	item := f.item(t, seller.ID, 20, true)

	w, env := f.do(t, http.MethodPost, "/api/items/redeem/"+item.ID, f.token(t, buyer.ID), gin.H{"type": "redeem"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "not enough points to redeem", env.Message)
}

func TestApproveEndpointRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	member := f.user(t, "member", entity.RoleMember, 50)
	admin := f.user(t, "admin", entity.RoleAdministrator, 50)
	item := f.item(t, member.ID, 20, false)

	w, _ := f.do(t, http.MethodPut, "/api/items/approve/"+item.ID, f.token(t, member.ID), gin.H{"approve": true})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := f.do(t, http.MethodPut, "/api/items/approve/"+item.ID, f.token(t, admin.ID), gin.H{"approve": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "item approved", env.Message)
}

func TestApproveEndpointReject(t *testing.T) {
	f := newFixture(t)
	member := f.user(t, "member", entity.RoleMember, 50)
	admin := f.user(t, "admin", entity.RoleAdministrator, 50)
	item := f.item(t, member.ID, 20, true)

	w, env := f.do(t, http.MethodPut, "/api/items/approve/"+item.ID, f.token(t, admin.ID), gin.H{"approve": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "item rejected", env.Message)
}

func TestListEndpointOnlyApprovedAvailable(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner", entity.RoleMember, 50)
	f.item(t, owner.ID, 20, true)
	f.item(t, owner.ID, 20, false)

	w, env := f.do(t, http.MethodGet, "/api/items", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 1)
}

func TestGetItemNotFound(t *testing.T) {
	f := newFixture(t)

	w, env := f.do(t, http.MethodGet, "/api/items/3f7f6f2a-0000-4000-8000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "item not found", env.Message)
}

func TestRegisterLoginFlow(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.otp.Put(context.Background(), "ana@example.com", "123456", 10*time.Minute))

	w, env := f.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "hunter2pass", "otp": "123456",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user registered", env.Message)

	w, env = f.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ana@example.com", "password": "hunter2pass",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	w, env = f.do(t, http.MethodGet, "/api/auth/user", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me struct {
		Email  string `json:"email"`
		Points int64  `json:"points"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "ana@example.com", me.Email)
	assert.Equal(t, int64(50), me.Points)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	f := newFixture(t)

	w, env := f.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "short", "otp": "123456",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid payload", env.Message)
}

func TestRegisterRejectsWrongOTP(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.otp.Put(context.Background(), "ana@example.com", "123456", 10*time.Minute))

	w, env := f.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "hunter2pass", "otp": "000000",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid or expired otp", env.Message)
}
