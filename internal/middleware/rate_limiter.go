package middleware

import (
	"net/http"
	"os"
	"strconv"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"jobboard-backend/internal/utilities"
)

// DefaultRequestsPerSecond is used when RATE_LIMIT_REQUESTS_PER_SECOND is unset or invalid
const DefaultRequestsPerSecond = 5

// keyFunc limits authenticated callers per account and anonymous callers per IP
func keyFunc(c *gin.Context) string {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		return "ip: " + c.ClientIP()
	}
	return "user: " + user.ID.String()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	retry := int(time.Until(info.ResetTime).Seconds()) + 1
	c.Header("Retry-After", strconv.Itoa(retry))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, utilities.ErrorResponse{
		Message: "Too many requests. Please try again later.",
		Code:    "rate_limited",
	})
}

// RateLimiterMiddleware allows reqPerSec requests per second per key.
func RateLimiterMiddleware(reqPerSec uint) gin.HandlerFunc {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: reqPerSec,
	})

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		KeyFunc:      keyFunc,
		ErrorHandler: errorHandler,
	})
}

// EnvRateLimitMiddleware reads the limit from RATE_LIMIT_REQUESTS_PER_SECOND.
func EnvRateLimitMiddleware() gin.HandlerFunc {
	return RateLimiterMiddleware(requestsPerSecond(os.Getenv("RATE_LIMIT_REQUESTS_PER_SECOND")))
}

func requestsPerSecond(raw string) uint {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return DefaultRequestsPerSecond
	}
	return uint(n)
}
