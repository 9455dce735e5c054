package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	// RoleSeeker is a job seeker who submits applications
	RoleSeeker = "user"
	// RoleEmployer owns job postings and reviews their applications
	RoleEmployer = "employer"
)

// User is gorm model for both seekers and employers
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name       string    `gorm:"type:text;not null" json:"name"`
	Email      string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password   string    `gorm:"type:text;not null" json:"-"`
	Role       string    `gorm:"type:text;not null;check:chk_users_role,role IN ('user', 'employer')" json:"role"`
	ResumeLink *string   `gorm:"type:text" json:"resumeLink,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// IsEmployer reports whether the user may own job postings.
func (u User) IsEmployer() bool {
	return u.Role == RoleEmployer
}

// Summary returns the public identity of the user, without credential material.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		ResumeLink: u.ResumeLink,
	}
}
