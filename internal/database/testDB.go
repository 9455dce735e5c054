package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded fixtures
var (
	TestSeeker1   m.User
	TestSeeker2   m.User
	TestEmployer1 m.User
	TestEmployer2 m.User

	// TestSeedPassword is the plain password of every seeded user
	TestSeedPassword = "SeedPass123!"

	// TestJob1 and TestJob2 belong to TestEmployer1, TestJob3 and TestJob4 to TestEmployer2
	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job
	TestJob4 m.Job

	// TestApplication1 is TestSeeker1's application to TestJob1
	TestApplication1 m.Application
)

var seedEmails = []string{
	"seeker1@example.com",
	"seeker2@example.com",
	"employer1@example.com",
	"employer2@example.com",
}

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts two seekers, two employers, four jobs and one application if empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return loadTestData(db)
	}

	userSpecs := []struct {
		name  string
		email string
		role  string
	}{
		{"Alice Seeker", seedEmails[0], m.RoleSeeker},
		{"Bob Seeker", seedEmails[1], m.RoleSeeker},
		{"TechNova Hiring", seedEmails[2], m.RoleEmployer},
		{"DataForge Hiring", seedEmails[3], m.RoleEmployer},
	}

	// Pre-hash shared password for all seeded users
	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := make([]m.User, 0, len(userSpecs))
	for _, s := range userSpecs {
		users = append(users, m.User{
			Name:     s.name,
			Email:    s.email,
			Role:     s.role,
			Password: hashedPwd,
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	assignUsers(users)

	// Distinct creation times keep the default newest-first order deterministic
	base := time.Now().Add(-time.Hour)

	jobs := []m.Job{
		{
			EmployerID: TestEmployer1.ID,
			CreatedAt:  base,
			EditableJobInfo: m.EditableJobInfo{
				Title:        "Backend Engineer",
				Company:      "TechNova",
				Location:     "Bangkok (Hybrid)",
				Description:  "Build Go services and PostgreSQL data layers for our hiring platform.",
				Requirements: pq.StringArray{"Go", "SQL", "REST APIs"},
				Type:         m.JobTypeFullTime,
				Salary:       &m.Salary{Min: 50000, Max: 90000, Currency: "THB"},
			},
		},
		{
			EmployerID: TestEmployer1.ID,
			CreatedAt:  base.Add(time.Minute),
			EditableJobInfo: m.EditableJobInfo{
				Title:        "Frontend Developer",
				Company:      "TechNova",
				Location:     "Remote",
				Description:  "Ship React components and keep the design system healthy.",
				Requirements: pq.StringArray{"TypeScript", "React"},
				Type:         m.JobTypePartTime,
				Salary:       &m.Salary{Min: 30000, Max: 45000, Currency: "THB"},
			},
		},
		{
			EmployerID: TestEmployer2.ID,
			CreatedAt:  base.Add(2 * time.Minute),
			EditableJobInfo: m.EditableJobInfo{
				Title:        "Engineering Manager",
				Company:      "DataForge",
				Location:     "Chiang Mai",
				Description:  "Lead a team of data engineers building analytics pipelines.",
				Requirements: pq.StringArray{"Leadership", "Data engineering"},
				Type:         m.JobTypeFullTime,
			},
		},
		{
			EmployerID: TestEmployer2.ID,
			CreatedAt:  base.Add(3 * time.Minute),
			EditableJobInfo: m.EditableJobInfo{
				Title:        "Data Analyst Intern",
				Company:      "DataForge",
				Location:     "Remote",
				Description:  "Support data cleansing and dashboard creation.",
				Requirements: pq.StringArray{"SQL", "Basic statistics"},
				Type:         m.JobTypeInternship,
				Salary:       &m.Salary{Min: 12000, Max: 15000, Currency: "THB"},
			},
		},
	}
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	TestJob1, TestJob2, TestJob3, TestJob4 = jobs[0], jobs[1], jobs[2], jobs[3]

	TestApplication1 = m.Application{
		JobID:       TestJob1.ID,
		ApplicantID: TestSeeker1.ID,
		ApplicationForm: m.ApplicationForm{
			ResumeLink:  "https://example.com/alice.pdf",
			CoverLetter: ptr("I have shipped Go services for three years."),
		},
	}
	return db.Create(&TestApplication1).Error
}

func assignUsers(users []m.User) {
	for _, u := range users {
		switch u.Email {
		case seedEmails[0]:
			TestSeeker1 = u
		case seedEmails[1]:
			TestSeeker2 = u
		case seedEmails[2]:
			TestEmployer1 = u
		case seedEmails[3]:
			TestEmployer2 = u
		}
	}
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("email IN ?", seedEmails).Find(&users).Error; err != nil {
		return err
	}
	assignUsers(users)

	// Load first four jobs deterministically
	var jobs []m.Job
	if err := db.Unscoped().Order("id ASC").Limit(4).Find(&jobs).Error; err != nil {
		return err
	}
	targets := []*m.Job{&TestJob1, &TestJob2, &TestJob3, &TestJob4}
	for i := range jobs {
		*targets[i] = jobs[i]
	}

	return db.Where("job_id = ? AND applicant_id = ?", TestJob1.ID, TestSeeker1.ID).
		First(&TestApplication1).Error
}

// ptr helper
func ptr[T any](v T) *T { return &v }
