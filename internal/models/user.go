package models

import "time"

// UserType is the marketplace role a user signs in with.
type UserType string

const (
	UserTypeVendor          UserType = "vendor"
	UserTypeServiceProvider UserType = "service_provider"
)

// Valid reports whether t is one of the known roles.
func (t UserType) Valid() bool {
	return t == UserTypeVendor || t == UserTypeServiceProvider
}

// User represents a vendor or a service provider of the marketplace.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex:idx_user_email_type;type:varchar(255)" validate:"required,email"`
	Type      UserType  `json:"type" gorm:"uniqueIndex:idx_user_email_type;type:varchar(32)" validate:"required,oneof=vendor service_provider"`
	Phone     string    `json:"phone,omitempty" gorm:"type:varchar(32)"`
	Address   string    `json:"address,omitempty" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// IsVendor reports whether the user sells materials.
func (u *User) IsVendor() bool { return u != nil && u.Type == UserTypeVendor }

// IsServiceProvider reports whether the user buys materials.
func (u *User) IsServiceProvider() bool { return u != nil && u.Type == UserTypeServiceProvider }
