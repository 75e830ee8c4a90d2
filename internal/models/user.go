package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of dashboard roles. Scope resolution and access
// checks switch over it instead of matching raw strings.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHR, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       Role   `gorm:"type:varchar(16);not null;default:employee" json:"role"`
	ManagerID  *uint  `gorm:"index" json:"managerId,omitempty"`
	IsActive   bool   `gorm:"not null;default:true" json:"isActive"`

	// Reminder preferences. ReminderTime is UTC, formatted HH:MM.
	EmailNotificationsEnabled bool   `json:"emailNotificationsEnabled"`
	ReminderTime              string `json:"reminderTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
