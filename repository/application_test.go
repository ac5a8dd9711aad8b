package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"risuwork/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appErrStatus(t *testing.T, err error) int {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Status
}

func TestApplyInsertsForOpenJob(t *testing.T) {
	db := setupDB(t)
	jobs := NewJobRepository(db)
	applications := NewApplicationRepository(db)
	ctx := context.Background()

	job := createJob(t, db, models.Job{Title: "t", Description: "d", Salary: 100, IsActive: true})

	id, err := applications.Apply(ctx, job.ID, 7)
	require.NoError(t, err)
	assert.NotZero(t, id)

	listed, err := applications.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, uint(7), listed[0].UserID)

	// The job itself is untouched by an application.
	got, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.True(t, got.Open())
}

func TestApplyRejectsDuplicate(t *testing.T) {
	db := setupDB(t)
	applications := NewApplicationRepository(db)
	ctx := context.Background()

	job := createJob(t, db, models.Job{Title: "t", Description: "d", Salary: 100, IsActive: true})

	_, err := applications.Apply(ctx, job.ID, 7)
	require.NoError(t, err)

	_, err = applications.Apply(ctx, job.ID, 7)
	assert.Equal(t, fiber.StatusConflict, appErrStatus(t, err))

	// A different user may still apply.
	_, err = applications.Apply(ctx, job.ID, 8)
	require.NoError(t, err)
}

func TestApplyRejectsClosedJobs(t *testing.T) {
	db := setupDB(t)
	applications := NewApplicationRepository(db)
	ctx := context.Background()

	inactive := createJob(t, db, models.Job{Title: "inactive", Description: "d", Salary: 100, IsActive: false})
	archived := createJob(t, db, models.Job{Title: "archived", Description: "d", Salary: 100, IsActive: true, IsArchived: true})

	_, err := applications.Apply(ctx, inactive.ID, 7)
	assert.Equal(t, fiber.StatusUnprocessableEntity, appErrStatus(t, err))

	_, err = applications.Apply(ctx, archived.ID, 7)
	assert.Equal(t, fiber.StatusUnprocessableEntity, appErrStatus(t, err))

	_, err = applications.Apply(ctx, 99999, 7)
	assert.Equal(t, fiber.StatusNotFound, appErrStatus(t, err))
}

func TestApplyConcurrentDuplicateYieldsOneRow(t *testing.T) {
	db := setupDB(t)
	applications := NewApplicationRepository(db)
	ctx := context.Background()

	job := createJob(t, db, models.Job{Title: "t", Description: "d", Salary: 100, IsActive: true})

	// Two racing applies for the same (job, user): exactly one row lands.
	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = applications.Apply(ctx, job.ID, 7)
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		if err == nil {
			succeeded++
		} else if appErrStatus(t, err) == fiber.StatusConflict {
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)

	listed, err := applications.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestApplyErrorsAreAppErrors(t *testing.T) {
	db := setupDB(t)
	applications := NewApplicationRepository(db)

	_, err := applications.Apply(context.Background(), 99999, 7)
	var appErr *models.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestListByUserEmailNewestFirst(t *testing.T) {
	db := setupDB(t)
	applications := NewApplicationRepository(db)
	ctx := context.Background()

	user := models.User{Email: "cs@x.test", Password: "p", Name: "cs", UserType: models.UserTypeCS}
	require.NoError(t, db.Create(&user).Error)

	jobA := createJob(t, db, models.Job{Title: "a", Description: "d", Salary: 1, IsActive: true})
	jobB := createJob(t, db, models.Job{Title: "b", Description: "d", Salary: 1, IsActive: true})

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Application{JobID: jobA.ID, UserID: user.ID, CreatedAt: base}).Error)
	require.NoError(t, db.Create(&models.Application{JobID: jobB.ID, UserID: user.ID, CreatedAt: base.Add(time.Hour)}).Error)

	listed, err := applications.ListByUserEmail(ctx, "cs@x.test")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, jobB.ID, listed[0].JobID)
	assert.Equal(t, jobA.ID, listed[1].JobID)

	listed, err = applications.ListByUserEmail(ctx, "nobody@x.test")
	require.NoError(t, err)
	assert.Empty(t, listed)
}
