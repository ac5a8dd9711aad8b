// Package models contains data structures for the application's domain models.
package models

import "time"

// User roles. CS users search and apply to jobs, CL users post them on
// behalf of a company.
const (
	UserTypeCS = "CS"
	UserTypeCL = "CL"
)

// User represents an account on either side of the board.
// CompanyID is set iff the user is a CL (employer) account.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	UserType  string    `gorm:"not null;index" json:"user_type"`
	CompanyID *uint     `json:"company_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the persisted schema's singular table name.
func (User) TableName() string { return "user" }
