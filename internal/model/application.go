package model

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses
const (
	// ApplicationStatusPending is the status of every new application
	ApplicationStatusPending = "pending"
	// ApplicationStatusReviewed indicates the employer has looked at the application
	ApplicationStatusReviewed = "reviewed"
	// ApplicationStatusAccepted indicates the employer accepted the applicant
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected indicates the employer rejected the applicant
	ApplicationStatusRejected = "rejected"
)

// ApplicationForm is what a seeker submits when applying to a job
type ApplicationForm struct {
	ResumeLink  string  `gorm:"type:text;not null" json:"resumeLink" binding:"required,url"`
	CoverLetter *string `gorm:"type:text" json:"coverLetter,omitempty"`
}

// Application represents a job application record.
// A seeker can apply to a job at most once, enforced by idx_application_job_applicant.
type Application struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	JobID uint `gorm:"not null;uniqueIndex:idx_application_job_applicant;<-:create" json:"jobId"`
	Job   *Job `gorm:"foreignKey:JobID;references:ID" json:"job,omitempty"`

	ApplicantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_application_job_applicant;index;<-:create" json:"applicantId"`
	Applicant   *User     `gorm:"foreignKey:ApplicantID;references:ID" json:"-"`

	ApplicationForm
	Status string `gorm:"type:text;not null;default:'pending';index;check:chk_applications_status,status IN ('pending', 'reviewed', 'accepted', 'rejected')" json:"status"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatusUpdate is the request body of an application status change
type StatusUpdate struct {
	Status string `json:"status" binding:"required,oneof=pending reviewed accepted rejected"`
}
