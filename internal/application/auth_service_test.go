package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewearhq/rewear-backend/internal/application"
	"github.com/rewearhq/rewear-backend/internal/domain/entity"
	"github.com/rewearhq/rewear-backend/internal/domain/errs"
	"github.com/rewearhq/rewear-backend/internal/infrastructure/memory"
	"github.com/rewearhq/rewear-backend/pkg/helpers"
	"github.com/rewearhq/rewear-backend/pkg/mailer"
)

func newAuthService(store *memory.Store, otp *memory.OTPStore, pub application.Publisher, mailEnabled bool) *application.AuthService {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return application.NewAuthService(store.Users(), otp, pub, jwt, testLogger(), 10*time.Minute, 50, mailEnabled)
}

func TestSendOTPStoresCodeAndQueuesMail(t *testing.T) {
	store := memory.NewStore()
	otp := memory.NewOTPStore()
	pub := newCapturePublisher(nil)
	svc := newAuthService(store, otp, pub, true)

	require.NoError(t, svc.SendOTP(context.Background(), "ana@example.com"))

	code, err := otp.Get(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Len(t, code, 6)

	job := pub.lastJob(t)
	assert.Equal(t, "ana@example.com", job.To)
	assert.Equal(t, mailer.TemplateOTPCode, job.Template)
	assert.Equal(t, code, job.Data["Code"])
}

func TestSendOTPSupersedesPreviousCode(t *testing.T) {
	store := memory.NewStore()
	otp := memory.NewOTPStore()
	svc := newAuthService(store, otp, newCapturePublisher(nil), true)

	require.NoError(t, svc.SendOTP(context.Background(), "ana@example.com"))
	first, err := otp.Get(context.Background(), "ana@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.SendOTP(context.Background(), "ana@example.com"))
	second, err := otp.Get(context.Background(), "ana@example.com")
	require.NoError(t, err)

	// the first code no longer registers anyone
	_, err = svc.Register(context.Background(), application.RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "hunter2pass", OTP: first,
	})
	if first != second {
		assert.ErrorIs(t, err, errs.ErrInvalidOTP)
	} else {
		assert.NoError(t, err)
	}
}

func TestSendOTPBrokerDown(t *testing.T) {
	store := memory.NewStore()
	otp := memory.NewOTPStore()
	pub := newCapturePublisher(errors.New("broker gone"))
	svc := newAuthService(store, otp, pub, true)

	err := svc.SendOTP(context.Background(), "ana@example.com")
	assert.ErrorIs(t, err, errs.ErrMailUnavailable)
}

func TestSendOTPMailDisabled(t *testing.T) {
	store := memory.NewStore()
	otp := memory.NewOTPStore()
	svc := newAuthService(store, otp, nil, false)

	require.NoError(t, svc.SendOTP(context.Background(), "ana@example.com"))
	code, err := otp.Get(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, code)
}

func TestRegister(t *testing.T) {
	store := memory.NewStore()
	otp := memory.NewOTPStore()
	svc := newAuthService(store, otp, nil, false)

	require.NoError(t, otp.Put(context.Background(), "ana@example.com", "123456", 10*time.Minute))

	u, err := svc.Register(context.Background(), application.RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "hunter2pass",
		OTP:      "123456",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, entity.RoleMember, u.Role)
	assert.Equal(t, int64(50), u.Points)
	assert.True(t, helpers.CompareHashAndPassword(u.PasswordHash, "hunter2pass"))

	// code is consumed
	code, err := otp.Get(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, code)
}

func TestRegisterWrongOTP(t *testing.T) {
	store := memory.NewStore()
	otp := memory.NewOTPStore()
	svc := newAuthService(store, otp, nil, false)

	require.NoError(t, otp.Put(context.Background(), "ana@example.com", "123456", 10*time.Minute))

	_, err := svc.Register(context.Background(), application.RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "hunter2pass", OTP: "654321",
	})
	assert.ErrorIs(t, err, errs.ErrInvalidOTP)

	_, err = store.Users().GetByEmail(context.Background(), "ana@example.com")
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestRegisterExpiredOTP(t *testing.T) {
	store := memory.NewStore()
	otp := memory.NewOTPStore()
	svc := newAuthService(store, otp, nil, false)

	require.NoError(t, otp.Put(context.Background(), "ana@example.com", "123456", 10*time.Minute))
	otp.Now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	_, err := svc.Register(context.Background(), application.RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "hunter2pass", OTP: "123456",
	})
	assert.ErrorIs(t, err, errs.ErrInvalidOTP)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := memory.NewStore()
	otp := memory.NewOTPStore()
	svc := newAuthService(store, otp, nil, false)

	seedUser(t, store, "ana", 50)
	require.NoError(t, otp.Put(context.Background(), "ana@example.com", "123456", 10*time.Minute))

	_, err := svc.Register(context.Background(), application.RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "hunter2pass", OTP: "123456",
	})
	assert.ErrorIs(t, err, errs.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	store := memory.NewStore()
	otp := memory.NewOTPStore()
	svc := newAuthService(store, otp, nil, false)

	hash, err := helpers.HashPassword("hunter2pass")
	require.NoError(t, err)
	u := &entity.User{Name: "Ana", Email: "ana@example.com", PasswordHash: hash, Points: 50, Role: entity.RoleMember}
	require.NoError(t, store.Users().Create(context.Background(), u))

	got, token, exp, err := svc.Login(context.Background(), "ana@example.com", "hunter2pass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, exp.After(time.Now()))

	claims, err := helpers.NewJWTManager("test-secret", time.Hour).ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(store, memory.NewOTPStore(), nil, false)

	hash, err := helpers.HashPassword("hunter2pass")
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		Name: "Ana", Email: "ana@example.com", PasswordHash: hash, Points: 50, Role: entity.RoleMember,
	}))

	_, _, _, err = svc.Login(context.Background(), "ana@example.com", "wrong")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(store, memory.NewOTPStore(), nil, false)

	_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}
