package query

import (
	"context"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/model"

	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Scope narrows or shapes a gorm query
type Scope = func(*gorm.DB) *gorm.DB

// Run counts the records of T matching filter and fetches one page of them, concurrently.
// fetch only shapes the page query (order, select, preload) and is not applied to the count.
//
// The two reads are not isolated from each other, so a concurrent write can make the count
// and the page disagree by a row. Listings tolerate that.
func Run[T any](ctx context.Context, db *gorm.DB, page Page, filter, fetch Scope) (Result[T], error) {
	var (
		items []T
		total int64
	)

	// Listing completes even if the client goes away.
	g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))

	g.Go(func() error {
		return db.WithContext(gctx).Model(new(T)).Scopes(filter).Count(&total).Error
	})

	g.Go(func() error {
		return db.WithContext(gctx).
			Model(new(T)).
			Scopes(filter, fetch).
			Offset(page.Skip()).
			Limit(page.Limit).
			Find(&items).Error
	})

	if err := g.Wait(); err != nil {
		return Result[T]{}, err
	}

	if items == nil {
		items = []T{}
	}

	return Result[T]{Items: items, Page: page, Total: total}, nil
}

// PublicUser loads only the public identity columns of a related user.
func PublicUser(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "resume_link")
}

// JobLister runs job listings
type JobLister struct {
	DB *gorm.DB
}

// NewJobLister creates a new instance of JobLister
func NewJobLister(db *gorm.DB) *JobLister {
	return &JobLister{DB: db}
}

// List returns the page of jobs matching q with their employers' public identity.
func (l *JobLister) List(ctx context.Context, q JobQuery) (Result[model.Job], error) {
	f := BuildJobFilter(q)
	log.Debug().Str("search_mode", f.Mode.String()).Int("page", q.Page.Number).Int("limit", q.Page.Limit).Msg("listing jobs")

	res, err := Run[model.Job](ctx, l.DB, q.Page, f.Where, func(db *gorm.DB) *gorm.DB {
		return f.Order(db).Preload("Employer", PublicUser)
	})
	if err != nil {
		return Result[model.Job]{}, apperror.Storage("Failed to fetch jobs", err)
	}
	return res, nil
}
