package query

import (
	"context"
	"log"
	"math"
	"net/url"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/validation"
)

var lister *JobLister

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if err := validation.Register(); err != nil {
		log.Fatalf("register validators: %v", err)
	}

	teardown, db, err := database.GetTestDB()
	if err != nil {
		log.Fatalf("could not start test database: %v", err)
	}
	lister = NewJobLister(db.DB)

	code := m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Fatalf("could not teardown postgres container: %v", err)
		}
	}
	os.Exit(code)
}

func list(t *testing.T, values url.Values) Result[model.Job] {
	t.Helper()
	q, err := ParseJobQuery(values)
	require.NoError(t, err)
	res, err := lister.List(context.Background(), q)
	require.NoError(t, err)
	return res
}

func jobIDs(jobs []model.Job) []uint {
	ids := make([]uint, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	return ids
}

func TestList_newestFirst(t *testing.T) {
	res := list(t, url.Values{})

	assert.Equal(t, int64(4), res.Total)
	assert.Equal(t, 1, res.TotalPages())
	assert.Equal(t, []uint{
		database.TestJob4.ID, database.TestJob3.ID, database.TestJob2.ID, database.TestJob1.ID,
	}, jobIDs(res.Items))

	require.NotNil(t, res.Items[0].Employer)
	assert.Equal(t, database.TestEmployer2.Name, res.Items[0].Employer.Name)
	assert.Empty(t, res.Items[0].Employer.Password)
}

func TestList_pastLastPage(t *testing.T) {
	res := list(t, url.Values{"page": {"5"}, "limit": {"1"}})

	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(4), res.Total)
	assert.Equal(t, 4, res.TotalPages())

	for _, page := range []string{"922337203685477582", strconv.Itoa(math.MaxInt)} {
		res := list(t, url.Values{"page": {page}, "limit": {"10"}})
		assert.Empty(t, res.Items, "page=%s", page)
		assert.Equal(t, int64(4), res.Total)
	}
}

func TestList_pagesDoNotOverlap(t *testing.T) {
	seen := map[uint]bool{}
	for page := 1; page <= 2; page++ {
		res := list(t, url.Values{"page": {strconv.Itoa(page)}, "limit": {"2"}})
		require.Len(t, res.Items, 2)
		for _, j := range res.Items {
			assert.False(t, seen[j.ID])
			seen[j.ID] = true
		}
	}
	assert.Len(t, seen, 4)
}

func TestList_idempotent(t *testing.T) {
	values := url.Values{"search": {"data"}, "limit": {"2"}}
	first := list(t, values)
	second := list(t, values)

	assert.Equal(t, jobIDs(first.Items), jobIDs(second.Items))
	assert.Equal(t, first.Total, second.Total)
}

func TestList_substringSearch(t *testing.T) {
	res := list(t, url.Values{"search": {"go"}})

	assert.Equal(t, []uint{database.TestJob1.ID}, jobIDs(res.Items))
	assert.Nil(t, res.Items[0].Score)
}

func TestList_substringSearchIsLiteral(t *testing.T) {
	res := list(t, url.Values{"search": {"100%"}})

	assert.Empty(t, res.Items)
	assert.Equal(t, int64(0), res.Total)
}

func TestList_rankedSearch(t *testing.T) {
	res := list(t, url.Values{"search": {"engineering leadership"}})

	require.Len(t, res.Items, 2)
	assert.Equal(t, int64(2), res.Total)
	assert.Equal(t, database.TestJob3.ID, res.Items[0].ID)
	assert.Equal(t, database.TestJob1.ID, res.Items[1].ID)

	require.NotNil(t, res.Items[0].Score)
	require.NotNil(t, res.Items[1].Score)
	assert.GreaterOrEqual(t, *res.Items[0].Score, *res.Items[1].Score)
}

func TestList_salaryRange(t *testing.T) {
	res := list(t, url.Values{"minSalary": {"20000"}})
	assert.ElementsMatch(t, []uint{database.TestJob1.ID, database.TestJob2.ID}, jobIDs(res.Items))

	res = list(t, url.Values{"maxSalary": {"50000"}})
	assert.ElementsMatch(t, []uint{database.TestJob2.ID, database.TestJob4.ID}, jobIDs(res.Items))

	res = list(t, url.Values{"minSalary": {"20000"}, "maxSalary": {"50000"}})
	assert.Equal(t, []uint{database.TestJob2.ID}, jobIDs(res.Items))
}

func TestList_typeLocationEmployer(t *testing.T) {
	res := list(t, url.Values{"type": {"full-time"}})
	assert.ElementsMatch(t, []uint{database.TestJob1.ID, database.TestJob3.ID}, jobIDs(res.Items))

	res = list(t, url.Values{"location": {"remote"}})
	assert.ElementsMatch(t, []uint{database.TestJob2.ID, database.TestJob4.ID}, jobIDs(res.Items))

	res = list(t, url.Values{"employer": {database.TestEmployer1.ID.String()}})
	assert.ElementsMatch(t, []uint{database.TestJob1.ID, database.TestJob2.ID}, jobIDs(res.Items))
}

func TestRun_applications(t *testing.T) {
	page, err := NewPage(1, 10)
	require.NoError(t, err)

	filter := func(db *gorm.DB) *gorm.DB {
		return db.Where("applicant_id = ?", database.TestSeeker1.ID)
	}
	fetch := func(db *gorm.DB) *gorm.DB {
		return db.Preload("Job").Order("created_at DESC")
	}

	res, err := Run[model.Application](context.Background(), lister.DB, page, filter, fetch)
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(1), res.Total)
	require.NotNil(t, res.Items[0].Job)
	assert.Equal(t, database.TestJob1.Title, res.Items[0].Job.Title)
}

func TestApplicationLister(t *testing.T) {
	apps := NewApplicationLister(lister.DB)
	page, err := NewPage(1, 10)
	require.NoError(t, err)

	mine, err := apps.ByApplicant(context.Background(), database.TestSeeker1.ID, ApplicationQuery{Page: page})
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	require.NotNil(t, mine.Items[0].Job)
	require.NotNil(t, mine.Items[0].Job.Employer)
	assert.Equal(t, database.TestEmployer1.Name, mine.Items[0].Job.Employer.Name)
	assert.Empty(t, mine.Items[0].Job.Employer.Password)

	none, err := apps.ByApplicant(context.Background(), database.TestSeeker1.ID, ApplicationQuery{Page: page, Status: model.ApplicationStatusAccepted})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
	assert.Equal(t, int64(0), none.Total)

	forJob, err := apps.ByJob(context.Background(), database.TestJob1.ID, ApplicationQuery{Page: page})
	require.NoError(t, err)
	require.Len(t, forJob.Items, 1)
	require.NotNil(t, forJob.Items[0].Applicant)
	assert.Equal(t, database.TestSeeker1.Email, forJob.Items[0].Applicant.Email)
	assert.Nil(t, forJob.Items[0].Job)

	empty, err := apps.ByJob(context.Background(), database.TestJob2.ID, ApplicationQuery{Page: page})
	require.NoError(t, err)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
}

func TestRun_canceledContextStillCompletes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q, err := ParseJobQuery(url.Values{})
	require.NoError(t, err)

	res, err := lister.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Total)
}
