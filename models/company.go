package models

import "time"

// Company is created once via the open company endpoint and is immutable
// afterwards.
type Company struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	IndustryID uint      `gorm:"not null;index" json:"industry_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Company) TableName() string { return "company" }

// IndustryCategory is a static lookup table referenced by Company.
type IndustryCategory struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (IndustryCategory) TableName() string { return "industry_category" }
