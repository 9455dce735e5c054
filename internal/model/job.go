package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Job types
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
)

// DefaultCurrency is used when a salary is given without a currency.
const DefaultCurrency = "USD"

// Salary is the optional pay range of a job, stored as salary_* columns on jobs.
type Salary struct {
	Min      float64 `json:"min" binding:"gt=0"`
	Max      float64 `json:"max" binding:"gt=0"`
	Currency string  `gorm:"type:text" json:"currency"`
}

// EditableJobInfo is the part of a job that its employer provides and may edit
type EditableJobInfo struct {
	Title        string         `gorm:"type:text;not null" json:"title" binding:"required,notblank,min=3"`
	Company      string         `gorm:"type:text;not null" json:"company" binding:"required,notblank,min=2"`
	Location     string         `gorm:"type:text;not null" json:"location" binding:"required,notblank,min=2"`
	Description  string         `gorm:"type:text;not null" json:"description" binding:"required,notblank,min=5"`
	Requirements pq.StringArray `gorm:"type:text[];not null" json:"requirements" binding:"required,min=1,dive,notblank"`
	Type         string         `gorm:"type:text;not null;index" json:"type" binding:"required,oneof=full-time part-time contract internship"`
	Salary       *Salary        `gorm:"embedded;embeddedPrefix:salary_" json:"salary,omitempty"`
}

// Job is gorm model for a job posting.
// A full-text search_vector column and its index are added by the database package after migration.
type Job struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	EditableJobInfo
	EmployerID uuid.UUID      `gorm:"type:uuid;not null;index;<-:create" json:"employerId"`
	Employer   *User          `gorm:"foreignKey:EmployerID;references:ID" json:"-"`
	CreatedAt  time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Score is the text search relevance, only set by ranked searches
	Score *float64 `gorm:"->;-:migration" json:"score,omitempty"`
}

// AfterFind drops the salary gorm allocates for rows whose salary columns are empty.
func (j *Job) AfterFind(_ *gorm.DB) error {
	if j.Salary != nil && j.Salary.Min == 0 && j.Salary.Max == 0 {
		j.Salary = nil
	}
	return nil
}

// BeforeSave fills the default salary currency.
func (j *Job) BeforeSave(_ *gorm.DB) error {
	if j.Salary != nil && j.Salary.Currency == "" {
		j.Salary.Currency = DefaultCurrency
	}
	return nil
}

// JobUpdate is a partial update of a job, every field is optional
type JobUpdate struct {
	Title        *string   `json:"title" binding:"omitempty,notblank,min=3"`
	Company      *string   `json:"company" binding:"omitempty,notblank,min=2"`
	Location     *string   `json:"location" binding:"omitempty,notblank,min=2"`
	Description  *string   `json:"description" binding:"omitempty,notblank,min=5"`
	Requirements *[]string `json:"requirements" binding:"omitempty,min=1,dive,notblank"`
	Type         *string   `json:"type" binding:"omitempty,oneof=full-time part-time contract internship"`
	Salary       *Salary   `json:"salary"`
}

// Changes returns the columns to update for the fields present in the request.
func (u JobUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if u.Title != nil {
		changes["title"] = *u.Title
	}
	if u.Company != nil {
		changes["company"] = *u.Company
	}
	if u.Location != nil {
		changes["location"] = *u.Location
	}
	if u.Description != nil {
		changes["description"] = *u.Description
	}
	if u.Requirements != nil {
		changes["requirements"] = pq.StringArray(*u.Requirements)
	}
	if u.Type != nil {
		changes["type"] = *u.Type
	}
	if u.Salary != nil {
		currency := u.Salary.Currency
		if currency == "" {
			currency = DefaultCurrency
		}
		changes["salary_min"] = u.Salary.Min
		changes["salary_max"] = u.Salary.Max
		changes["salary_currency"] = currency
	}
	return changes
}
