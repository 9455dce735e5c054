package model

import "github.com/google/uuid"

// UserSummary is the identity of a user shown next to jobs and applications
type UserSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ResumeLink *string   `json:"resumeLink,omitempty"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// MeResponse is returned by the current user endpoint
type MeResponse struct {
	User User `json:"user"`
}

// JobResponse is a job with its employer's public identity
type JobResponse struct {
	Job
	Employer *UserSummary `json:"employer,omitempty"`
}

// ToJobResponse converts Job to JobResponse
func (j Job) ToJobResponse() JobResponse {
	resp := JobResponse{Job: j}
	if j.Employer != nil {
		summary := j.Employer.Summary()
		summary.ResumeLink = nil
		resp.Employer = summary
	}
	return resp
}

// ApplicationResponse is an application with its job and applicant when they are loaded
type ApplicationResponse struct {
	Application
	Job       *JobResponse `json:"job,omitempty"`
	Applicant *UserSummary `json:"applicant,omitempty"`
}

// ToApplicationResponse converts Application to ApplicationResponse
func (a Application) ToApplicationResponse() ApplicationResponse {
	resp := ApplicationResponse{Application: a}
	if a.Job != nil {
		job := a.Job.ToJobResponse()
		resp.Job = &job
	}
	resp.Applicant = a.Applicant.Summary()
	return resp
}

// PageMeta describes one page of a listing
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// JobListResponse is one page of jobs
type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
	PageMeta
}

// ApplicationListResponse is one page of applications
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	PageMeta
}
