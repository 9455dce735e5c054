package auth

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/phuslu/log"
)

var (
	authLogMu sync.Mutex
	authLog   = newAuthLogger(filepath.Join("log", "auth.log"))
)

func newAuthLogger(path string) *log.Logger {
	return &log.Logger{
		Level: log.DebugLevel,
		Writer: &log.FileWriter{
			Filename:     path,
			FileMode:     0o600,
			MaxSize:      10 * 1024 * 1024,
			MaxBackups:   5,
			EnsureFolder: true,
		},
	}
}

// LogAuthAttempt records an authentication attempt in log/auth.log when LOGGING=true.
// action is Register, Login or Logout; status is Success or Fail; identifier is an email or user id.
func LogAuthAttempt(level log.Level, action, status, identifier, message string) {
	if !strings.EqualFold(os.Getenv("LOGGING"), "true") {
		return
	}

	authLogMu.Lock()
	logger := authLog
	authLogMu.Unlock()

	e := logger.WithLevel(level).Str("action", action).Str("status", status)
	if identifier != "" {
		e = e.Str("identifier", identifier)
	}
	e.Msg(message)
}

// setAuthLogger swaps the auth log destination and returns the previous logger.
func setAuthLogger(l *log.Logger) *log.Logger {
	authLogMu.Lock()
	defer authLogMu.Unlock()
	prev := authLog
	authLog = l
	return prev
}
