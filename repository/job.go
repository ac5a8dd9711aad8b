package repository

import (
	"context"
	"errors"

	"risuwork/models"

	"gorm.io/gorm"
)

// JobSearchFilter carries the optional search predicates. Zero values mean
// "not supplied"; each supplied field appends exactly one AND clause.
type JobSearchFilter struct {
	Keyword   string
	MinSalary int
	MaxSalary int
	Tag       string
}

// predicate is one parameterized WHERE fragment.
type predicate struct {
	expr string
	args []any
}

// predicates folds the supplied filters into an ordered clause list. Clause
// order is fixed: keyword, salary lower bound, salary upper bound, tag.
func (f JobSearchFilter) predicates() []predicate {
	var preds []predicate
	if f.Keyword != "" {
		kw := "%" + f.Keyword + "%"
		preds = append(preds, predicate{"(title LIKE ? OR description LIKE ?)", []any{kw, kw}})
	}
	if f.MinSalary > 0 {
		preds = append(preds, predicate{"salary >= ?", []any{f.MinSalary}})
	}
	if f.MaxSalary > 0 {
		preds = append(preds, predicate{"salary <= ?", []any{f.MaxSalary}})
	}
	if f.Tag != "" {
		// Tags are one comma-joined string. A tag matches as the whole field,
		// at its start, in the middle, or at its end; never as a substring of
		// another tag.
		preds = append(preds, predicate{
			"(tags LIKE ? OR tags LIKE ? OR tags LIKE ? OR tags LIKE ?)",
			[]any{f.Tag + ",%", "%," + f.Tag + ",%", "%," + f.Tag, f.Tag},
		})
	}
	return preds
}

// JobRepository defines the interface for job data operations
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	// Update applies a partial update; only the supplied columns change.
	Update(ctx context.Context, id uint, fields map[string]any) error
	Archive(ctx context.Context, id uint) error
	// Search returns active, non-archived jobs matching the filter, newest
	// update first with descending id as tie-break.
	Search(ctx context.Context, f JobSearchFilter) ([]models.Job, error)
	// ListByCompany returns the non-archived jobs created by any user of the
	// company, same ordering as Search.
	ListByCompany(ctx context.Context, companyID uint) ([]models.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &job, nil
}

func (r *jobRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) Archive(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		Update("is_archived", true).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) Search(ctx context.Context, f JobSearchFilter) ([]models.Job, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("is_active = ? AND is_archived = ?", true, false)
	for _, p := range f.predicates() {
		q = q.Where(p.expr, p.args...)
	}

	var jobs []models.Job
	if err := q.Order("updated_at DESC, id DESC").Find(&jobs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return jobs, nil
}

func (r *jobRepository) ListByCompany(ctx context.Context, companyID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where(`is_archived = ? AND create_user_id IN (SELECT id FROM "user" WHERE company_id = ?)`, false, companyID).
		Order("updated_at DESC, id DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return jobs, nil
}
