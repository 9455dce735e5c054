package utilities

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/apperror"
)

// ParseID reads a numeric id path parameter. what names the resource in the error message.
func ParseID(c *gin.Context, param, what string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 0)
	if err != nil || id == 0 {
		return 0, apperror.Validation("Invalid "+what+" id", err)
	}
	return uint(id), nil
}
