package application

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/middleware"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/testutil"
	"jobboard-backend/internal/validation"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if os.Getenv("SECRET_KEY") == "" {
		_ = os.Setenv("SECRET_KEY", "test-secret")
	}
	if err := validation.Register(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register validators: %v\n", err)
		os.Exit(1)
	}

	var err error
	var teardown func(context.Context, ...testcontainers.TerminateOption) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
	os.Exit(code)
}

func setupRouter() *gin.Engine {
	r := gin.New()
	ac := NewApplicationController(testDB)

	seeker := r.Group("", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleSeeker))
	seeker.POST("/jobs/:id/apply", ac.ApplyHandler)
	seeker.GET("/jobs/:id/my-application", ac.GetMyApplicationForJobHandler)
	seeker.GET("/my-applications", ac.GetMyApplicationsHandler)

	employer := r.Group("", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleEmployer))
	employer.GET("/jobs/:id/applications", ac.GetJobApplicationsHandler)
	employer.PATCH("/applications/:id/status", ac.UpdateApplicationStatusHandler)
	return r
}

func tokenFor(t *testing.T, user model.User) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, user.Email, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

// reviewableApplication returns TestSeeker1's application to TestJob2, creating it once.
func reviewableApplication(t *testing.T) model.Application {
	t.Helper()
	app := model.Application{
		JobID:           database.TestJob2.ID,
		ApplicantID:     database.TestSeeker1.ID,
		ApplicationForm: model.ApplicationForm{ResumeLink: "https://example.com/alice-frontend.pdf"},
	}
	require.NoError(t, testDB.
		Where("job_id = ? AND applicant_id = ?", app.JobID, app.ApplicantID).
		FirstOrCreate(&app).Error)
	return app
}

func TestApply_SuccessThenDuplicate(t *testing.T) {
	r := setupRouter()
	token := tokenFor(t, database.TestSeeker2)
	url := fmt.Sprintf("/jobs/%d/apply", database.TestJob2.ID)
	body := gin.H{"resumeLink": "https://example.com/bob.pdf", "coverLetter": "Happy to help with React."}

	rec, resp := testutil.MakeJSONRequest(body, token, r, url, http.MethodPost)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, float64(database.TestJob2.ID), resp["jobId"])
	assert.Equal(t, database.TestSeeker2.ID.String(), resp["applicantId"])
	assert.Equal(t, model.ApplicationStatusPending, resp["status"])
	assert.Equal(t, "Happy to help with React.", resp["coverLetter"])

	rec, resp = testutil.MakeJSONRequest(body, token, r, url, http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "conflict", resp["code"])
	assert.Equal(t, "You have already applied to this job", resp["message"])

	var count int64
	require.NoError(t, testDB.Model(&model.Application{}).
		Where("job_id = ? AND applicant_id = ?", database.TestJob2.ID, database.TestSeeker2.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApply_JobNotFound(t *testing.T) {
	r := setupRouter()
	token := tokenFor(t, database.TestSeeker2)
	body := gin.H{"resumeLink": "https://example.com/bob.pdf"}

	rec, resp := testutil.MakeJSONRequest(body, token, r, "/jobs/999999/apply", http.MethodPost)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", resp["message"])

	deleted := model.Job{
		EmployerID: database.TestEmployer2.ID,
		EditableJobInfo: model.EditableJobInfo{
			Title:        "Closed Position",
			Company:      "DataForge",
			Location:     "Remote",
			Description:  "This role has been filled.",
			Requirements: pq.StringArray{"Patience"},
			Type:         model.JobTypeContract,
		},
	}
	require.NoError(t, testDB.Create(&deleted).Error)
	require.NoError(t, testDB.Delete(&deleted).Error)

	rec, resp = testutil.MakeJSONRequest(body, token, r, fmt.Sprintf("/jobs/%d/apply", deleted.ID), http.MethodPost)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", resp["message"])
}

func TestApply_Invalid(t *testing.T) {
	r := setupRouter()
	seeker := tokenFor(t, database.TestSeeker2)
	url := fmt.Sprintf("/jobs/%d/apply", database.TestJob3.ID)

	rec, resp := testutil.MakeJSONRequest(gin.H{"resumeLink": "not a url"}, seeker, r, url, http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "resumeLink must be a valid URL", resp["message"])

	rec, resp = testutil.MakeJSONRequest(gin.H{}, seeker, r, url, http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "resumeLink is required", resp["message"])

	rec, _ = testutil.MakeJSONRequest(gin.H{"resumeLink": "https://example.com/x.pdf"}, seeker, r, "/jobs/abc/apply", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	employer := tokenFor(t, database.TestEmployer1)
	rec, _ = testutil.MakeJSONRequest(gin.H{"resumeLink": "https://example.com/x.pdf"}, employer, r, url, http.MethodPost)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetMyApplications(t *testing.T) {
	r := setupRouter()
	token := tokenFor(t, database.TestSeeker1)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/my-applications", http.MethodGet)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	apps, ok := resp["applications"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, apps)

	var found bool
	for _, a := range apps {
		app := a.(map[string]interface{})
		assert.Equal(t, database.TestSeeker1.ID.String(), app["applicantId"])
		if app["id"] == float64(database.TestApplication1.ID) {
			found = true
			job := app["job"].(map[string]interface{})
			assert.Equal(t, database.TestJob1.Title, job["title"])
			employer := job["employer"].(map[string]interface{})
			assert.Equal(t, database.TestEmployer1.Name, employer["name"])
		}
	}
	assert.True(t, found)
	assert.Equal(t, float64(1), resp["page"])
	assert.Equal(t, float64(len(apps)), resp["total"])
}

func TestGetMyApplications_Query(t *testing.T) {
	r := setupRouter()
	token := tokenFor(t, database.TestSeeker1)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/my-applications?status=accepted&limit=5", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, a := range resp["applications"].([]interface{}) {
		assert.Equal(t, model.ApplicationStatusAccepted, a.(map[string]interface{})["status"])
	}
	assert.Equal(t, float64(5), resp["limit"])

	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/my-applications?status=hired", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["message"], "status must be one of")
}

func TestGetMyApplicationForJob(t *testing.T) {
	r := setupRouter()

	token := tokenFor(t, database.TestSeeker1)
	rec, resp := testutil.MakeJSONRequest(nil, token, r, fmt.Sprintf("/jobs/%d/my-application", database.TestJob1.ID), http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(database.TestApplication1.ID), resp["id"])
	job := resp["job"].(map[string]interface{})
	assert.Equal(t, float64(database.TestJob1.ID), job["id"])

	other := tokenFor(t, database.TestSeeker2)
	rec, resp = testutil.MakeJSONRequest(nil, other, r, fmt.Sprintf("/jobs/%d/my-application", database.TestJob1.ID), http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Application not found", resp["message"])
}

func TestGetJobApplications(t *testing.T) {
	r := setupRouter()
	url := fmt.Sprintf("/jobs/%d/applications", database.TestJob1.ID)

	owner := tokenFor(t, database.TestEmployer1)
	rec, resp := testutil.MakeJSONRequest(nil, owner, r, url, http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	apps := resp["applications"].([]interface{})
	require.Len(t, apps, 1)
	applicant := apps[0].(map[string]interface{})["applicant"].(map[string]interface{})
	assert.Equal(t, database.TestSeeker1.Email, applicant["email"])
	assert.NotContains(t, applicant, "password")
	assert.Equal(t, float64(1), resp["totalPages"])

	other := tokenFor(t, database.TestEmployer2)
	rec, resp = testutil.MakeJSONRequest(nil, other, r, url, http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found or unauthorized", resp["message"])

	rec, resp = testutil.MakeJSONRequest(nil, owner, r, "/jobs/999999/applications", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found or unauthorized", resp["message"])
}

func TestUpdateApplicationStatus(t *testing.T) {
	r := setupRouter()
	app := reviewableApplication(t)
	url := fmt.Sprintf("/applications/%d/status", app.ID)

	owner := tokenFor(t, database.TestEmployer1)
	for _, status := range []string{model.ApplicationStatusAccepted, model.ApplicationStatusPending, model.ApplicationStatusRejected} {
		rec, resp := testutil.MakeJSONRequest(gin.H{"status": status}, owner, r, url, http.MethodPatch)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, status, resp["status"])
	}

	var stored model.Application
	require.NoError(t, testDB.First(&stored, app.ID).Error)
	assert.Equal(t, model.ApplicationStatusRejected, stored.Status)
}

func TestUpdateApplicationStatus_Rejected(t *testing.T) {
	r := setupRouter()
	app := reviewableApplication(t)
	url := fmt.Sprintf("/applications/%d/status", app.ID)

	other := tokenFor(t, database.TestEmployer2)
	rec, resp := testutil.MakeJSONRequest(gin.H{"status": model.ApplicationStatusAccepted}, other, r, url, http.MethodPatch)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Application not found or unauthorized", resp["message"])

	owner := tokenFor(t, database.TestEmployer1)
	rec, resp = testutil.MakeJSONRequest(gin.H{"status": "hired"}, owner, r, url, http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["message"], "status must be one of")

	rec, _ = testutil.MakeJSONRequest(gin.H{"status": model.ApplicationStatusAccepted}, owner, r, "/applications/999999/status", http.MethodPatch)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	seeker := tokenFor(t, database.TestSeeker1)
	rec, _ = testutil.MakeJSONRequest(gin.H{"status": model.ApplicationStatusAccepted}, seeker, r, url, http.MethodPatch)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
