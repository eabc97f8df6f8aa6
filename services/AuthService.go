package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/telugujayaprakash/myprofileDashboard/apperr"
	"github.com/telugujayaprakash/myprofileDashboard/helper"
	"github.com/telugujayaprakash/myprofileDashboard/models"
	"github.com/telugujayaprakash/myprofileDashboard/stores"
)

// OTPMailer delivers a one-time code to an email address.
type OTPMailer interface {
	SendOTP(email, code string) error
}

// AuthService runs the email/OTP lifecycle: a challenge record gates both
// registration and login, one outstanding challenge per email, verified
// challenges turn into accounts and tokens.
type AuthService struct {
	users     stores.UserStore
	profiles  stores.ProfileStore
	otps      stores.OTPStore
	mailer    OTPMailer
	jwtSecret []byte
	tokenTTL  time.Duration
	otpTTL    time.Duration
	log       *zap.Logger
}

func NewAuthService(
	users stores.UserStore,
	profiles stores.ProfileStore,
	otps stores.OTPStore,
	mailer OTPMailer,
	jwtSecret string,
	tokenTTL, otpTTL time.Duration,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		profiles:  profiles,
		otps:      otps,
		mailer:    mailer,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		otpTTL:    otpTTL,
		log:       log,
	}
}

// Register starts a registration: it stores a challenge carrying the pending
// account data and mails the code. The account itself is only created on
// verification.
func (s *AuthService) Register(ctx context.Context, username, email, phoneNumber string) error {
	_, err := s.users.FindByEmailOrUsername(ctx, email, username)
	if err == nil {
		return apperr.Conflict("User already exists with this email or username")
	}
	if !errors.Is(err, stores.ErrNotFound) {
		return apperr.Internal(err)
	}

	return s.issueChallenge(ctx, email, &models.PendingRegistration{
		Username:    username,
		PhoneNumber: phoneNumber,
	})
}

// Login starts a login for an existing account.
func (s *AuthService) Login(ctx context.Context, email string) error {
	_, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return apperr.NotFound("No account found with this email")
		}
		return apperr.Internal(err)
	}

	return s.issueChallenge(ctx, email, nil)
}

func (s *AuthService) issueChallenge(ctx context.Context, email string, pending *models.PendingRegistration) error {
	code, err := helper.GenerateOTP()
	if err != nil {
		return apperr.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}

	now := time.Now().UTC()
	challenge := &models.OTPChallenge{
		Email:     email,
		OTPHash:   string(hash),
		UserData:  pending,
		ExpiresAt: now.Add(s.otpTTL),
		CreatedAt: now,
	}

	if err := s.otps.Insert(ctx, challenge); err != nil {
		if errors.Is(err, stores.ErrDuplicate) {
			return apperr.Conflict("OTP already sent to this email. Please check your email or wait for it to expire.")
		}
		return apperr.Internal(err)
	}

	if err := s.mailer.SendOTP(email, code); err != nil {
		// Delete the challenge so the user can retry right away instead of
		// being blocked by an undeliverable record.
		if delErr := s.otps.DeleteByEmail(ctx, email); delErr != nil {
			s.log.Error("failed to clean up otp challenge after mail failure",
				zap.String("email", email), zap.Error(delErr))
		}
		s.log.Error("otp mail delivery failed", zap.String("email", email), zap.Error(err))
		return apperr.Internal(err)
	}

	return nil
}

type AuthResult struct {
	Token   string
	User    *models.User
	Created bool
}

// VerifyOTP consumes the challenge. A registration challenge creates the
// account and its profile; a login challenge resolves the account. Both
// issue a signed token and delete the challenge.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*AuthResult, error) {
	challenge, err := s.otps.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperr.InvalidInput("Invalid OTP or email")
		}
		return nil, apperr.Internal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(challenge.OTPHash), []byte(code)) != nil {
		return nil, apperr.InvalidInput("Invalid OTP or email")
	}

	// TTL sweeps lag; reject an expired challenge the index has not removed.
	if challenge.Expired(time.Now().UTC()) {
		if err := s.otps.DeleteByEmail(ctx, email); err != nil {
			return nil, apperr.Internal(err)
		}
		return nil, apperr.InvalidInput("OTP has expired. Please request a new one.")
	}

	var user *models.User
	created := false

	if challenge.IsRegistration() {
		now := time.Now().UTC()
		user = &models.User{
			UserID:      "user_" + uuid.NewString(),
			Username:    challenge.UserData.Username,
			Email:       challenge.Email,
			PhoneNumber: challenge.UserData.PhoneNumber,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.users.Insert(ctx, user); err != nil {
			if errors.Is(err, stores.ErrDuplicate) {
				return nil, apperr.Conflict("User already exists with this email or username")
			}
			return nil, apperr.Internal(err)
		}
		if err := s.profiles.EnsureExists(ctx, user.UserID, user.Username); err != nil {
			return nil, apperr.Internal(err)
		}
		created = true
	} else {
		user, err = s.users.FindByEmail(ctx, challenge.Email)
		if err != nil {
			if errors.Is(err, stores.ErrNotFound) {
				return nil, apperr.NotFound("User account not found")
			}
			return nil, apperr.Internal(err)
		}
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.otps.DeleteByEmail(ctx, email); err != nil {
		return nil, apperr.Internal(err)
	}

	return &AuthResult{Token: token, User: user, Created: created}, nil
}

func (s *AuthService) signToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userid":  user.UserID,
		"isAdmin": user.IsAdmin,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}
