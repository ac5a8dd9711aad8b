package models

import "time"

// Job is a posting created by a CL user. Tags is a flat comma-joined string,
// deliberately not normalized; tag search must match whole comma-delimited
// elements over it.
//
// Archived jobs disappear from search and the employer's list but stay
// readable via direct fetch and existing applications. Archiving is one-way.
type Job struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"not null" json:"description"`
	Salary       int       `gorm:"not null" json:"salary"`
	Tags         string    `json:"tags"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	IsArchived   bool      `gorm:"not null;default:false" json:"is_archived"`
	CreateUserID uint      `gorm:"not null;index" json:"create_user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Job) TableName() string { return "job" }

// Open reports whether the job still accepts applications.
func (j *Job) Open() bool { return j.IsActive && !j.IsArchived }
