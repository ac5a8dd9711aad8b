package repository

import (
	"context"
	"errors"

	"risuwork/models"

	"gorm.io/gorm"
)

// CompanyWithIndustry is a company row joined with its industry name, as
// embedded in job search results.
type CompanyWithIndustry struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Industry   string `json:"industry"`
	IndustryID uint   `json:"-"`
}

// CompanyRepository defines the interface for company and industry lookups.
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uint) (*models.Company, error)
	GetIndustry(ctx context.Context, id uint) (*models.IndustryCategory, error)
	// GetForJob resolves the company that owns a job by walking
	// job -> creating user -> company. Returns nil when the chain is broken.
	GetForJob(ctx context.Context, jobID uint) (*CompanyWithIndustry, error)
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return models.NewValidationError("Industry not found")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *companyRepository) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &company, nil
}

func (r *companyRepository) GetIndustry(ctx context.Context, id uint) (*models.IndustryCategory, error) {
	var industry models.IndustryCategory
	if err := r.db.WithContext(ctx).First(&industry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &industry, nil
}

func (r *companyRepository) GetForJob(ctx context.Context, jobID uint) (*CompanyWithIndustry, error) {
	var row CompanyWithIndustry
	// "user" is quoted: reserved word on PostgreSQL.
	tx := r.db.WithContext(ctx).Raw(`
		SELECT company.id, company.name, industry_category.name AS industry, company.industry_id
		FROM company
		JOIN industry_category ON company.industry_id = industry_category.id
		WHERE company.id = (
			SELECT company_id FROM "user"
			WHERE id = (SELECT create_user_id FROM job WHERE id = ?)
		)`, jobID).Scan(&row)
	if tx.Error != nil {
		return nil, models.NewInternalError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}
