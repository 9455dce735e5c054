// Package guard decides whether a caller may act on a job or application.
package guard

import (
	"jobboard-backend/internal/model"
)

// CanManageJob reports whether caller is an employer and owns job.
func CanManageJob(caller model.User, job model.Job) bool {
	return caller.IsEmployer() && job.EmployerID == caller.ID
}

// CanReviewApplication reports whether caller owns the job app was made to.
// The application's job must be loaded; an unloaded job denies.
func CanReviewApplication(caller model.User, app model.Application) bool {
	if app.Job == nil || app.Job.ID != app.JobID {
		return false
	}
	return CanManageJob(caller, *app.Job)
}
