package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eventhive/ticketing-api/internal/domain"
	"github.com/eventhive/ticketing-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByPhone(ctx context.Context, phone string) (dao.User, error)
	SetOTP(ctx context.Context, userID uint, code string, expiresAt time.Time) error
	ClearOTP(ctx context.Context, userID uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:    user.Email,
		Password: user.Password,
		Phone:    user.Phone,
		Name:     user.Name,
		Provider: user.Provider,
		Role:     user.Role,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (domain.User, error) {
	found, err := r.dao.FindByPhone(ctx, phone)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByPhone -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) SetOTP(ctx context.Context, userID uint, challenge domain.OTPChallenge) error {
	if err := r.dao.SetOTP(ctx, userID, challenge.Code, challenge.ExpiresAt); err != nil {
		return fmt.Errorf("r.dao.SetOTP -> %w", err)
	}

	return nil
}

// PendingOTP returns the user's unexpired challenge, if one exists.
func (r *UserRepository) PendingOTP(ctx context.Context, userID uint) (domain.OTPChallenge, bool, error) {
	found, err := r.dao.FindByID(ctx, userID)
	if err != nil {
		return domain.OTPChallenge{}, false, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	if found.OTPCode == nil || found.OTPExpiresAt == nil {
		return domain.OTPChallenge{}, false, nil
	}

	return domain.OTPChallenge{
		Code:      *found.OTPCode,
		ExpiresAt: *found.OTPExpiresAt,
	}, true, nil
}

func (r *UserRepository) ClearOTP(ctx context.Context, userID uint) error {
	if err := r.dao.ClearOTP(ctx, userID); err != nil {
		return fmt.Errorf("r.dao.ClearOTP -> %w", err)
	}

	return nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Phone:     u.Phone,
		Provider:  u.Provider,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
