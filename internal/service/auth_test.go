package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventhive/ticketing-api/internal/domain"
	"github.com/eventhive/ticketing-api/internal/repository"
)

type authUserRepo struct {
	users  map[uint]domain.User
	otps   map[uint]domain.OTPChallenge
	nextID uint
}

func newAuthUserRepo() *authUserRepo {
	return &authUserRepo{
		users: make(map[uint]domain.User),
		otps:  make(map[uint]domain.OTPChallenge),
	}
}

func (r *authUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}

	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user

	return user, nil
}

func (r *authUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (r *authUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (r *authUserRepo) FindByPhone(_ context.Context, phone string) (domain.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (r *authUserRepo) SetOTP(_ context.Context, userID uint, challenge domain.OTPChallenge) error {
	r.otps[userID] = challenge
	return nil
}

func (r *authUserRepo) PendingOTP(_ context.Context, userID uint) (domain.OTPChallenge, bool, error) {
	challenge, ok := r.otps[userID]
	return challenge, ok, nil
}

func (r *authUserRepo) ClearOTP(_ context.Context, userID uint) error {
	delete(r.otps, userID)
	return nil
}

func TestSignupAndLogin(t *testing.T) {
	repo := newAuthUserRepo()
	svc := NewAuthService(repo)

	created, err := svc.Signup(context.Background(), domain.User{
		Email:    "alice@example.com",
		Password: "hunter2abc1",
		Name:     "Alice",
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "password", created.Provider)
	assert.Equal(t, "attendee", created.Role)
	assert.NotEqual(t, "hunter2abc1", created.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("hunter2abc1")))

	user, err := svc.Login(context.Background(), "alice@example.com", "hunter2abc1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "nobody@example.com", "hunter2abc1")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newAuthUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.User{Email: "a@example.com", Password: "password1"})
	require.ErrorIs(t, err, ErrUserEmailExists)
}

func TestOTPFlow(t *testing.T) {
	repo := newAuthUserRepo()
	svc := NewAuthService(repo)

	created, err := repo.Create(context.Background(), domain.User{
		Email: "p@example.com",
		Phone: "+33612345678",
		Role:  "attendee",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RequestOTP(context.Background(), "+33612345678"))

	challenge, pending, err := repo.PendingOTP(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, pending)
	assert.Len(t, challenge.Code, 6)

	// Wrong code first.
	_, err = svc.VerifyOTP(context.Background(), "+33612345678", "000000x")
	require.ErrorIs(t, err, ErrInvalidOTP)

	user, err := svc.VerifyOTP(context.Background(), "+33612345678", challenge.Code)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	// The challenge is single use.
	_, err = svc.VerifyOTP(context.Background(), "+33612345678", challenge.Code)
	require.ErrorIs(t, err, ErrInvalidOTP)
}

func TestVerifyOTP_Expired(t *testing.T) {
	repo := newAuthUserRepo()
	svc := NewAuthService(repo)

	created, err := repo.Create(context.Background(), domain.User{Phone: "+33698765432"})
	require.NoError(t, err)

	require.NoError(t, repo.SetOTP(context.Background(), created.ID, domain.OTPChallenge{
		Code:      "123456",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}))

	_, err = svc.VerifyOTP(context.Background(), "+33698765432", "123456")
	require.ErrorIs(t, err, ErrOTPExpired)
}

func TestRequestOTP_UnknownPhone(t *testing.T) {
	svc := NewAuthService(newAuthUserRepo())

	err := svc.RequestOTP(context.Background(), "+33600000000")
	require.ErrorIs(t, err, ErrUserNotFound)
}
