package repository

import (
	"context"
	"errors"

	"risuwork/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplicationRepository defines the interface for application data operations
type ApplicationRepository interface {
	// Apply runs the whole guarded apply flow in one transaction: lock the
	// job row, re-check it is open, reject duplicates, insert. Returns the
	// new application id.
	Apply(ctx context.Context, jobID, userID uint) (uint, error)
	ListByUserEmail(ctx context.Context, email string) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID uint) ([]models.Application, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Apply(ctx context.Context, jobID, userID uint) (uint, error) {
	var applicationID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row lock on the job so two concurrent requests cannot both observe
		// "open" and double-insert past the duplicate check. SQLite has no
		// FOR UPDATE; its writers are serialized by the database lock.
		q := tx
		if tx.Dialector.Name() != "sqlite" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var job models.Job
		if err := q.First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Job")
			}
			return models.NewInternalError(err)
		}
		if !job.Open() {
			return models.NewUnprocessableError("Job is not accepting applications")
		}

		var count int64
		err := tx.Model(&models.Application{}).
			Where("job_id = ? AND user_id = ?", jobID, userID).
			Count(&count).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		if count > 0 {
			return models.NewConflictError("Already applied for the job")
		}

		application := models.Application{JobID: jobID, UserID: userID}
		if err := tx.Create(&application).Error; err != nil {
			return models.NewInternalError(err)
		}
		applicationID = application.ID
		return nil
	})
	return applicationID, err
}

func (r *applicationRepository) ListByUserEmail(ctx context.Context, email string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).Raw(`
		SELECT application.id, application.job_id, application.user_id, application.created_at
		FROM application
		JOIN "user" ON application.user_id = "user".id
		WHERE "user".email = ?
		ORDER BY application.created_at DESC`, email).
		Scan(&applications).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return applications, nil
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at").
		Find(&applications).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return applications, nil
}
