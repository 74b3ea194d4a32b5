package auth

import (
	"context"
	"time"

	"github.com/taskmanager/pkg/entities"
	"gorm.io/gorm"
)

type Repository interface {
	CreateUser(ctx context.Context, user *entities.User) error
	FindUserByEmail(ctx context.Context, email string) (entities.User, error)
	FindUserByID(ctx context.Context, id uint) (entities.User, error)
	UpdateProfile(ctx context.Context, id uint, fields map[string]any) (entities.User, error)
	SaveCode(ctx context.Context, email, code string, expiresAt time.Time) (bool, error)
	CodeMatches(ctx context.Context, email, code string, now time.Time) (bool, error)
	ResetPassword(ctx context.Context, email, code, passwordHash string, now time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

// CreateUser inserts without a pre-check; the unique email index decides concurrent races.
func (r *repository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) FindUserByEmail(ctx context.Context, email string) (entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, err
}

func (r *repository) FindUserByID(ctx context.Context, id uint) (entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return user, err
}

func (r *repository) UpdateProfile(ctx context.Context, id uint, fields map[string]any) (entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			res := tx.Model(&entities.User{}).Where("id = ?", id).Updates(fields)
			if res.Error != nil {
				return res.Error
			}
		}
		return tx.Where("id = ?", id).First(&user).Error
	})
	return user, err
}

// SaveCode overwrites any previous code for email. Reports false when no such user exists.
func (r *repository) SaveCode(ctx context.Context, email, code string, expiresAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("email = ?", email).
		Updates(map[string]any{"otp": code, "otp_expires_at": expiresAt})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) CodeMatches(ctx context.Context, email, code string, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("email = ? AND otp = ? AND otp_expires_at > ?", email, code, now).
		Count(&count).Error
	return count > 0, err
}

// ResetPassword sets the new hash and consumes the code in one conditional statement,
// so a code can succeed at most once. Reports false when nothing matched.
func (r *repository) ResetPassword(ctx context.Context, email, code, passwordHash string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("email = ? AND otp = ? AND otp_expires_at > ?", email, code, now).
		Updates(map[string]any{
			"password":       passwordHash,
			"otp":            entities.CodeConsumed,
			"otp_expires_at": nil,
		})
	return res.RowsAffected > 0, res.Error
}
