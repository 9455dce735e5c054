package query

import (
	"context"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationLister runs application listings, newest first.
type ApplicationLister struct {
	DB *gorm.DB
}

// NewApplicationLister creates a new instance of ApplicationLister
func NewApplicationLister(db *gorm.DB) *ApplicationLister {
	return &ApplicationLister{DB: db}
}

// ByApplicant lists the applications submitted by applicant with their jobs and employers.
// Applications to deleted jobs are listed without a job.
func (l *ApplicationLister) ByApplicant(ctx context.Context, applicant uuid.UUID, q ApplicationQuery) (Result[model.Application], error) {
	filter := applicationFilter("applications.applicant_id = ?", applicant, q.Status)
	fetch := func(db *gorm.DB) *gorm.DB {
		return newestApplications(db).
			Preload("Job").
			Preload("Job.Employer", PublicUser)
	}
	return l.run(ctx, q.Page, filter, fetch)
}

// ByJob lists the applications made to job with the applicants' public identity.
func (l *ApplicationLister) ByJob(ctx context.Context, job uint, q ApplicationQuery) (Result[model.Application], error) {
	filter := applicationFilter("applications.job_id = ?", job, q.Status)
	fetch := func(db *gorm.DB) *gorm.DB {
		return newestApplications(db).Preload("Applicant", PublicUser)
	}
	return l.run(ctx, q.Page, filter, fetch)
}

func (l *ApplicationLister) run(ctx context.Context, page Page, filter, fetch Scope) (Result[model.Application], error) {
	res, err := Run[model.Application](ctx, l.DB, page, filter, fetch)
	if err != nil {
		return Result[model.Application]{}, apperror.Storage("Failed to fetch applications", err)
	}
	return res, nil
}

func applicationFilter(owner string, value interface{}, status string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where(owner, value)
		if status != "" {
			db = db.Where("applications.status = ?", status)
		}
		return db
	}
}

func newestApplications(db *gorm.DB) *gorm.DB {
	return db.Order("applications.created_at DESC").Order("applications.id DESC")
}
