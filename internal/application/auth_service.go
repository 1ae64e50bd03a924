package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rewearhq/rewear-backend/internal/domain/entity"
	"github.com/rewearhq/rewear-backend/internal/domain/errs"
	repo "github.com/rewearhq/rewear-backend/internal/domain/repository"
	"github.com/rewearhq/rewear-backend/pkg/helpers"
	"github.com/rewearhq/rewear-backend/pkg/mailer"
)

// AuthService handles registration (with email OTP verification), login and
// profile reads. Users only enter the identity store after presenting a
// code issued to their email within the validity window.
type AuthService struct {
	Repo   repo.UserRepository
	OTP    OTPStore
	Pub    Publisher
	JWT    *helpers.JWTManager
	Logger *logrus.Logger

	OTPTTL         time.Duration
	StartingPoints int64
	MailEnabled    bool
}

func NewAuthService(users repo.UserRepository, otp OTPStore, pub Publisher, jwt *helpers.JWTManager, logger *logrus.Logger, otpTTL time.Duration, startingPoints int64, mailEnabled bool) *AuthService {
	return &AuthService{
		Repo:           users,
		OTP:            otp,
		Pub:            pub,
		JWT:            jwt,
		Logger:         logger,
		OTPTTL:         otpTTL,
		StartingPoints: startingPoints,
		MailEnabled:    mailEnabled,
	}
}

// SendOTP issues a fresh registration code for the email and queues the
// delivery mail. A second request supersedes the previous code. A queue
// outage surfaces as errs.ErrMailUnavailable.
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	if err := s.OTP.Put(ctx, email, code, s.OTPTTL); err != nil {
		return err
	}

	if !s.MailEnabled {
		s.Logger.WithField("email", email).Debug("mail sending disabled, otp stored only")
		return nil
	}
	if s.Pub == nil {
		return errs.ErrMailUnavailable
	}
	job := mailer.EmailJob{
		To:       email,
		Template: mailer.TemplateOTPCode,
		Data: map[string]any{
			"Code":      code,
			"ExpiresIn": s.OTPTTL.String(),
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("email", email).Error("otp mail enqueue failed")
		return errs.ErrMailUnavailable
	}
	return nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	OTP      string
}

// Register creates a member once the presented code matches the pending one
// for the email. Duplicate emails are rejected; a wrong or expired code
// creates nothing. The code is consumed on success.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, errs.ErrEmailTaken
	} else if !errors.Is(err, errs.ErrUserNotFound) {
		return nil, err
	}

	stored, err := s.OTP.Get(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if stored == "" || stored != in.OTP {
		return nil, errs.ErrInvalidOTP
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Points:       s.StartingPoints,
		Role:         entity.RoleMember,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	if err := s.OTP.Del(ctx, in.Email); err != nil {
		s.Logger.WithError(err).WithField("email", in.Email).Warn("otp cleanup failed")
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user registered")
	return u, nil
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, errs.ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, "", time.Time{}, errs.ErrInvalidCredentials
	}
	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

// GetUser returns the user for the id, or errs.ErrUserNotFound.
func (s *AuthService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return s.Repo.GetByID(ctx, id)
}
