package models

import "time"

// Application records a CS user applying to a job. At most one row exists per
// (job, user) pair; the apply flow enforces this inside a locked transaction
// rather than with a unique constraint. Applications are never withdrawn.
type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JobID     uint      `gorm:"not null;index" json:"job_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Application) TableName() string { return "application" }
