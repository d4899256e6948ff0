package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventhive/ticketing-api/internal/domain"
	"github.com/eventhive/ticketing-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrWrongPassword   = errors.New("wrong password")
	ErrInvalidOTP      = errors.New("invalid one-time code")
	ErrOTPExpired      = errors.New("one-time code expired")
)

const (
	otpDigits   = 6
	otpLifespan = 10 * time.Minute
)

type AuthService struct {
	repo UserRepository
}

func NewAuthService(repo UserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)
	user.Provider = "password"
	if user.Role == "" {
		user.Role = "attendee"
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// RequestOTP stores a fresh one-time code on the phone user's record.
// Delivery over SMS is an external concern; the code is only logged here so
// development flows can complete.
func (s *AuthService) RequestOTP(ctx context.Context, phone string) error {
	user, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.FindByPhone -> %w", err)
	}

	code, err := generateOTP(otpDigits)
	if err != nil {
		return fmt.Errorf("generateOTP -> %w", err)
	}

	challenge := domain.OTPChallenge{
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(otpLifespan),
	}
	if err := s.repo.SetOTP(ctx, user.ID, challenge); err != nil {
		return fmt.Errorf("s.repo.SetOTP -> %w", err)
	}

	zap.L().Debug("otp challenge issued",
		zap.Uint("user_id", user.ID),
		zap.String("code", code),
		zap.Time("expires_at", challenge.ExpiresAt))

	return nil
}

// VerifyOTP checks the code against the pending challenge and clears the
// challenge on success.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) (domain.User, error) {
	user, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByPhone -> %w", err)
	}

	challenge, pending, err := s.repo.PendingOTP(ctx, user.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.PendingOTP -> %w", err)
	}
	if !pending || challenge.Code != code {
		return domain.User{}, ErrInvalidOTP
	}
	if challenge.Expired(time.Now().UTC()) {
		return domain.User{}, ErrOTPExpired
	}

	if err := s.repo.ClearOTP(ctx, user.ID); err != nil {
		return domain.User{}, fmt.Errorf("s.repo.ClearOTP -> %w", err)
	}

	return user, nil
}

func generateOTP(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", digits, n), nil
}
