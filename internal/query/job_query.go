// Package query builds and runs the filtered, paginated listings of jobs and applications.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

// JobQuery is a parsed and validated job listing request.
// Nil pointers and empty strings mean the filter is not applied.
type JobQuery struct {
	Page      Page
	Search    string
	Type      string
	Location  string
	MinSalary *float64
	MaxSalary *float64
	Employer  *uuid.UUID
}

type jobQueryForm struct {
	Page      string `form:"page" binding:"omitempty,number"`
	Limit     string `form:"limit" binding:"omitempty,number"`
	Search    string `form:"search"`
	Type      string `form:"type" binding:"omitempty,oneof=full-time part-time contract internship"`
	Location  string `form:"location"`
	MinSalary string `form:"minSalary" binding:"omitempty,numeric"`
	MaxSalary string `form:"maxSalary" binding:"omitempty,numeric"`
	Employer  string `form:"employer" binding:"omitempty,uuid"`
}

// ApplicationQuery is a parsed application listing request
type ApplicationQuery struct {
	Page   Page
	Status string
}

type applicationQueryForm struct {
	Page   string `form:"page" binding:"omitempty,number"`
	Limit  string `form:"limit" binding:"omitempty,number"`
	Status string `form:"status" binding:"omitempty,oneof=pending reviewed accepted rejected"`
}

// ParseJobQuery validates raw job listing parameters. Malformed input fails with a validation error.
func ParseJobQuery(values url.Values) (JobQuery, error) {
	var form jobQueryForm
	if err := bindForm(values, &form); err != nil {
		return JobQuery{}, err
	}

	page, err := ParsePage(form.Page, form.Limit)
	if err != nil {
		return JobQuery{}, err
	}

	q := JobQuery{
		Page:     page,
		Search:   strings.TrimSpace(form.Search),
		Type:     form.Type,
		Location: strings.TrimSpace(form.Location),
	}

	if q.MinSalary, err = parseSalary("minSalary", form.MinSalary); err != nil {
		return JobQuery{}, err
	}
	if q.MaxSalary, err = parseSalary("maxSalary", form.MaxSalary); err != nil {
		return JobQuery{}, err
	}

	if form.Employer != "" {
		id, err := uuid.Parse(form.Employer)
		if err != nil {
			return JobQuery{}, apperror.Validation("employer must be a valid id", err)
		}
		q.Employer = &id
	}

	return q, nil
}

// ParseApplicationQuery validates raw application listing parameters.
func ParseApplicationQuery(values url.Values) (ApplicationQuery, error) {
	var form applicationQueryForm
	if err := bindForm(values, &form); err != nil {
		return ApplicationQuery{}, err
	}

	page, err := ParsePage(form.Page, form.Limit)
	if err != nil {
		return ApplicationQuery{}, err
	}

	return ApplicationQuery{Page: page, Status: form.Status}, nil
}

// bindForm maps query values onto dst and validates it. Blank values are dropped first
// so they behave like absent parameters.
func bindForm(values url.Values, dst interface{}) error {
	form := make(map[string][]string, len(values))
	for key, vs := range values {
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				form[key] = append(form[key], v)
			}
		}
	}

	if err := binding.MapFormWithTag(dst, form, "form"); err != nil {
		return apperror.Validation("Invalid query parameters", err)
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return apperror.Validation(validation.Message(err, "Invalid query parameters"), err)
	}
	return nil
}

func parseSalary(name, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperror.Validation(name+" must be a number", err)
	}
	if v < 0 {
		return nil, apperror.Validation(name+" must not be negative", nil)
	}
	return &v, nil
}
