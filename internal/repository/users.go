package repository

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/errs"
	"github.com/shouta0715/shunsaku-monorepo-sub001/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, email, password, name, department string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:      email,
		Password:   string(hashedPassword),
		Name:       name,
		Department: department,
		Role:       models.RoleEmployee,
		IsActive:   true,
	}
	err = r.db.WithContext(ctx).Create(user).Error
	if isUniqueViolation(err) {
		return nil, errs.Conflict("an account with this email already exists")
	}
	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DirectReports lists the active users reporting to a manager.
func (r *UserRepository) DirectReports(ctx context.Context, managerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("manager_id = ? AND is_active = ?", managerID, true).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// ActiveUsers lists every active employee, the HR/admin scope.
func (r *UserRepository) ActiveUsers(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("is_active = ?", true).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *UserRepository) GetUsers(ctx context.Context, ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// UsersForReminder finds users who have reminders enabled for a specific
// UTC HH:MM time.
func (r *UserRepository) UsersForReminder(ctx context.Context, reminderTime string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("email_notifications_enabled = ? AND reminder_time = ? AND is_active = ?", true, reminderTime, true).
		Find(&users).Error
	return users, err
}

// UpdateNotificationPreferences updates a user's reminder settings.
func (r *UserRepository) UpdateNotificationPreferences(ctx context.Context, userID uint, enabled bool, reminderTime string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"email_notifications_enabled": enabled,
		"reminder_time":               reminderTime,
	}).Error
}
