package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Subscription plan codes an office can be on.
const (
	PlanBasic      = "basic"
	PlanBusiness   = "business"
	PlanEnterprise = "enterprise"
)

// User roles.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleSecretary  = "secretary"
	RoleTrainer    = "trainer"
	RoleStudent    = "student"
)

// Office is a school branch. Students, secretaries and notifications are scoped to one office.
type Office struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	Address          string    `gorm:"size:255" json:"address"`
	Phone            string    `gorm:"size:64" json:"phone"`
	SubscriptionPlan string    `gorm:"size:32;not null;default:basic" json:"subscription_plan"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// User is an account able to sign in to the dashboard.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash []byte    `json:"-"`
	Role         string    `gorm:"size:32;not null;index" json:"role"`
	OfficeID     *uint     `gorm:"index" json:"office_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SetPassword stores a bcrypt hash of the given password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u User) CheckPassword(password string) bool {
	if len(u.PasswordHash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil
}

// Subscription is a SaaS plan offered to offices.
type Subscription struct {
	Code      string                      `gorm:"primaryKey;size:64" json:"id"`
	Name      string                      `gorm:"size:255;not null" json:"name"`
	Price     float64                     `gorm:"not null" json:"price"`
	Duration  string                      `gorm:"size:32;not null" json:"duration"`
	Features  datatypes.JSONSlice[string] `json:"features"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// SchoolProfile holds the institute branding shown on the dashboard. A single row is stored.
type SchoolProfile struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	Logo       string    `gorm:"size:512" json:"logo"`
	Name       string    `gorm:"size:255" json:"name"`
	TargetLine string    `gorm:"size:255" json:"target_line"`
	Phone      string    `gorm:"size:64" json:"phone"`
	Email      string    `gorm:"size:255" json:"email"`
	Website    string    `gorm:"size:255" json:"website"`
	Address    string    `gorm:"size:255" json:"address"`
	Country    string    `gorm:"size:64" json:"country"`
	AdminName  string    `gorm:"size:255" json:"admin_name"`
	UpdatedAt  time.Time `json:"updated_at"`
}
