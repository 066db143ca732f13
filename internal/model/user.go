package model

import "time"

// UserRole distinguishes regular users from administrators.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// UserStatus represents the account standing of a user.
type UserStatus string

const (
	UserStatusActive              UserStatus = "active"
	UserStatusSuspended           UserStatus = "suspended"
	UserStatusPendingVerification UserStatus = "pending_verification"
)

// UserType describes how the user participates in the marketplace.
type UserType string

const (
	UserTypeBuyer  UserType = "buyer"
	UserTypeSeller UserType = "seller"
	UserTypeBoth   UserType = "both"
)

// User represents a marketplace participant.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:320;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         UserRole   `json:"role" gorm:"type:varchar(20);default:'user';not null;index"`
	UserType     UserType   `json:"user_type" gorm:"type:varchar(20);default:'buyer';not null"`
	Status       UserStatus `json:"status" gorm:"type:varchar(30);default:'active';not null;index"`

	PhoneNumber  string `json:"phone_number,omitempty" gorm:"size:20;index"`
	AddressLine1 string `json:"address_line1,omitempty" gorm:"type:text"`
	AddressLine2 string `json:"address_line2,omitempty" gorm:"type:text"`
	City         string `json:"city,omitempty" gorm:"size:100"`
	PostalCode   string `json:"postal_code,omitempty" gorm:"size:20"`
	Country      string `json:"country,omitempty" gorm:"size:100"`

	IsEmailVerified bool `json:"is_email_verified" gorm:"default:false;not null"`
	IsPhoneVerified bool `json:"is_phone_verified" gorm:"default:false;not null"`

	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastSignedIn time.Time `json:"last_signed_in"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
