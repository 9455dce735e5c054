// Package job provides HTTP handlers for job posting operations.
package job

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

// errNotOwned is returned for jobs that are missing or belong to another employer.
var errNotOwned = apperror.NotFound("Job not found or unauthorized")

// JobController handles job posting endpoints
type JobController struct {
	DB     *database.DBinstanceStruct
	Lister *query.JobLister
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB:     db,
		Lister: query.NewJobLister(db.DB),
	}
}

// CreateJobHandler creates a job owned by the calling employer.
// @Summary Create a job posting
// @Description Only employers can access this endpoint
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body model.EditableJobInfo true "Job information"
// @Success 201 {object} model.JobResponse "Job created"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJobHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var job model.Job
	if err := c.ShouldBindJSON(&job.EditableJobInfo); err != nil {
		utilities.RespondError(c, apperror.Validation(validation.Message(err, "Invalid request body"), err))
		return
	}
	job.EmployerID = user.ID

	if err := jc.DB.WithContext(c.Request.Context()).Create(&job).Error; err != nil {
		utilities.RespondError(c, apperror.Storage("Failed to create job", err))
		return
	}

	job.Employer = &user
	c.JSON(http.StatusCreated, job.ToJobResponse())
}

// GetJobsHandler lists jobs matching the query, newest first or by relevance when searching.
// @Summary List jobs
// @Description Search of up to 6 characters matches substrings of title, company, location and description. Longer searches use full-text search ranked by relevance.
// @Tags Job
// @Produce json
// @Param page query int false "Page number, starting at 1" default(1)
// @Param limit query int false "Page size, at most 100" default(10)
// @Param search query string false "Search text"
// @Param type query string false "Job type" Enums(full-time, part-time, contract, internship)
// @Param location query string false "Case insensitive substring of the location"
// @Param minSalary query number false "Lowest acceptable minimum salary"
// @Param maxSalary query number false "Highest acceptable maximum salary"
// @Param employer query string false "Employer id"
// @Success 200 {object} model.JobListResponse "One page of jobs"
// @Failure 400 {object} utilities.ErrorResponse "Invalid query"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobController) GetJobsHandler(c *gin.Context) {
	q, err := query.ParseJobQuery(c.Request.URL.Query())
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	res, err := jc.Lister.List(c.Request.Context(), q)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	jobs := make([]model.JobResponse, 0, len(res.Items))
	for _, j := range res.Items {
		jobs = append(jobs, j.ToJobResponse())
	}

	c.JSON(http.StatusOK, model.JobListResponse{Jobs: jobs, PageMeta: res.Meta()})
}

// GetJobHandler returns one job with its employer.
// @Summary Get a job
// @Tags Job
// @Produce json
// @Param id path int true "Job id"
// @Success 200 {object} model.JobResponse "Job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobHandler(c *gin.Context) {
	id, err := utilities.ParseID(c, "id", "job")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var job model.Job
	err = jc.DB.WithContext(c.Request.Context()).
		Preload("Employer", query.PublicUser).
		First(&job, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utilities.RespondError(c, apperror.NotFound("Job not found"))
			return
		}
		utilities.RespondError(c, apperror.Storage("Failed to fetch job", err))
		return
	}

	c.JSON(http.StatusOK, job.ToJobResponse())
}

// UpdateJobHandler applies a partial update to a job owned by the caller.
// @Summary Update a job
// @Description Only the employer who owns the job can update it. Every field is optional.
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Param Job body model.JobUpdate true "Fields to change"
// @Success 200 {object} model.JobResponse "Updated job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid id or body"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an employer"
// @Failure 404 {object} utilities.ErrorResponse "Job not found or unauthorized"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [patch]
func (jc *JobController) UpdateJobHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	id, err := utilities.ParseID(c, "id", "job")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	var update model.JobUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utilities.RespondError(c, apperror.Validation(validation.Message(err, "Invalid request body"), err))
		return
	}

	var job model.Job
	err = jc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := lockOwnedJob(tx, user, id, &job); err != nil {
			return err
		}

		changes := update.Changes()
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&job).Updates(changes).Error; err != nil {
			return apperror.Storage("Failed to update job", err)
		}
		if err := tx.Preload("Employer", query.PublicUser).First(&job, id).Error; err != nil {
			return apperror.Storage("Failed to fetch job", err)
		}
		return nil
	})
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	if job.Employer == nil {
		job.Employer = &user
	}
	c.JSON(http.StatusOK, job.ToJobResponse())
}

// DeleteJobHandler removes a job owned by the caller from every listing.
// Its applications are kept.
// @Summary Delete a job
// @Description Only the employer who owns the job can delete it
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job id"
// @Success 200 {object} utilities.MessageResponse "Job deleted"
// @Failure 400 {object} utilities.ErrorResponse "Invalid id"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an employer"
// @Failure 404 {object} utilities.ErrorResponse "Job not found or unauthorized"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteJobHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	id, err := utilities.ParseID(c, "id", "job")
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	err = jc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var job model.Job
		if err := lockOwnedJob(tx, user, id, &job); err != nil {
			return err
		}
		if err := tx.Delete(&job).Error; err != nil {
			return apperror.Storage("Failed to delete job", err)
		}
		return nil
	})
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job deleted successfully"})
}

// lockOwnedJob loads the job for update, failing with errNotOwned when it is missing
// or not the caller's.
func lockOwnedJob(tx *gorm.DB, user model.User, id uint, job *model.Job) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errNotOwned
	}
	if err != nil {
		return apperror.Storage("Failed to fetch job", err)
	}
	if !guard.CanManageJob(user, *job) {
		return errNotOwned
	}
	return nil
}
