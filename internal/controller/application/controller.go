// Package application provides HTTP handlers for job application operations.
package application

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/guard"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/query"
	"jobboard-backend/internal/utilities"
	"jobboard-backend/internal/validation"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB     *database.DBinstanceStruct
	Lister *query.ApplicationLister
}

// NewApplicationController creates a new instance of ApplicationController with the provided database connection.
func NewApplicationController(db *database.DBinstanceStruct) *ApplicationController {
	return &ApplicationController{
		DB:     db,
		Lister: query.NewApplicationLister(db.DB),
	}
}

// ApplyHandler submits the caller's application to a job.
// @Summary Apply to a job
// @Description Only job seekers can access this endpoint. A seeker can apply to a job once.
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Param application body model.ApplicationForm true "Application information"
// @Success 201 {object} model.ApplicationResponse "Application submitted"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body or already applied"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not a job seeker"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/apply [post]
func (ac *ApplicationController) ApplyHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	jobID, err := utilities.ParseID(c, "id", "job")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var form model.ApplicationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utilities.RespondError(c, apperror.Validation(validation.Message(err, "Invalid request body"), err))
		return
	}

	db := ac.DB.WithContext(c.Request.Context())

	var job model.Job
	if err := db.Select("id").First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utilities.RespondError(c, apperror.NotFound("Job not found"))
			return
		}
		utilities.RespondError(c, apperror.Storage("Failed to fetch job", err))
		return
	}

	app := model.Application{
		JobID:           job.ID,
		ApplicantID:     user.ID,
		ApplicationForm: form,
		Status:          model.ApplicationStatusPending,
	}

	// The unique index decides between concurrent duplicate applications.
	if err := db.Create(&app).Error; err != nil {
		switch {
		case database.IsUniqueViolation(err):
			utilities.RespondError(c, apperror.Conflict("You have already applied to this job", err))
		case database.IsForeignKeyViolation(err):
			utilities.RespondError(c, apperror.NotFound("Job not found"))
		default:
			utilities.RespondError(c, apperror.Storage("Failed to create application", err))
		}
		return
	}

	c.JSON(http.StatusCreated, app.ToApplicationResponse())
}

// GetMyApplicationsHandler lists the caller's applications, newest first.
// @Summary List my applications
// @Description Only job seekers can access this endpoint. Applications to deleted jobs have no job.
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param page query int false "Page number, starting at 1" default(1)
// @Param limit query int false "Page size, at most 100" default(10)
// @Param status query string false "Application status" Enums(pending, reviewed, accepted, rejected)
// @Success 200 {object} model.ApplicationListResponse "One page of applications"
// @Failure 400 {object} utilities.ErrorResponse "Invalid query"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not a job seeker"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /my-applications [get]
func (ac *ApplicationController) GetMyApplicationsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	q, err := query.ParseApplicationQuery(c.Request.URL.Query())
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	res, err := ac.Lister.ByApplicant(c.Request.Context(), user.ID, q)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toListResponse(res))
}

// GetMyApplicationForJobHandler returns the caller's application to one job.
// @Summary Get my application to a job
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Success 200 {object} model.ApplicationResponse "Application with its job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not a job seeker"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/my-application [get]
func (ac *ApplicationController) GetMyApplicationForJobHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	jobID, err := utilities.ParseID(c, "id", "job")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var app model.Application
	err = ac.DB.WithContext(c.Request.Context()).
		Preload("Job").
		Preload("Job.Employer", query.PublicUser).
		Where("job_id = ? AND applicant_id = ?", jobID, user.ID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utilities.RespondError(c, apperror.NotFound("Application not found"))
			return
		}
		utilities.RespondError(c, apperror.Storage("Failed to fetch application", err))
		return
	}

	c.JSON(http.StatusOK, app.ToApplicationResponse())
}

// GetJobApplicationsHandler lists the applications to a job owned by the caller.
// @Summary List applications to a job
// @Description Only the employer who owns the job can access this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Param page query int false "Page number, starting at 1" default(1)
// @Param limit query int false "Page size, at most 100" default(10)
// @Param status query string false "Application status" Enums(pending, reviewed, accepted, rejected)
// @Success 200 {object} model.ApplicationListResponse "One page of applications with applicants"
// @Failure 400 {object} utilities.ErrorResponse "Invalid id or query"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an employer"
// @Failure 404 {object} utilities.ErrorResponse "Job not found or unauthorized"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/applications [get]
func (ac *ApplicationController) GetJobApplicationsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	jobID, err := utilities.ParseID(c, "id", "job")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	q, err := query.ParseApplicationQuery(c.Request.URL.Query())
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var job model.Job
	err = ac.DB.WithContext(c.Request.Context()).Select("id", "employer_id").First(&job, jobID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utilities.RespondError(c, apperror.Storage("Failed to fetch job", err))
		return
	}
	if err != nil || !guard.CanManageJob(user, job) {
		utilities.RespondError(c, apperror.NotFound("Job not found or unauthorized"))
		return
	}

	res, err := ac.Lister.ByJob(c.Request.Context(), job.ID, q)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toListResponse(res))
}

// UpdateApplicationStatusHandler sets the status of an application to one of the caller's jobs.
// Any status may follow any other.
// @Summary Update application status
// @Description Only the employer who owns the application's job can access this endpoint
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application id"
// @Param status body model.StatusUpdate true "New status"
// @Success 200 {object} model.ApplicationResponse "Updated application"
// @Failure 400 {object} utilities.ErrorResponse "Invalid id or status"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an employer"
// @Failure 404 {object} utilities.ErrorResponse "Application not found or unauthorized"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id}/status [patch]
func (ac *ApplicationController) UpdateApplicationStatusHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	id, err := utilities.ParseID(c, "id", "application")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var update model.StatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utilities.RespondError(c, apperror.Validation(validation.Message(err, "Invalid request body"), err))
		return
	}

	notOwned := apperror.NotFound("Application not found or unauthorized")

	var app model.Application
	err = ac.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Job").
			First(&app, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notOwned
		}
		if err != nil {
			return apperror.Storage("Failed to fetch application", err)
		}

		if !guard.CanReviewApplication(user, app) {
			return notOwned
		}

		if err := tx.Model(&app).Update("status", update.Status).Error; err != nil {
			return apperror.Storage("Failed to update application", err)
		}
		app.Status = update.Status
		return nil
	})
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, app.ToApplicationResponse())
}

func toListResponse(res query.Result[model.Application]) model.ApplicationListResponse {
	apps := make([]model.ApplicationResponse, 0, len(res.Items))
	for _, a := range res.Items {
		apps = append(apps, a.ToApplicationResponse())
	}
	return model.ApplicationListResponse{Applications: apps, PageMeta: res.Meta()}
}
