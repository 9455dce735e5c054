package server

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"
)

// ConfigureLogger sets up the default logger. LOG_LEVEL picks the level (info when unset)
// and gin's debug mode switches output to a colored console writer.
func ConfigureLogger() {
	log.DefaultLogger = newLogger(os.Getenv("LOG_LEVEL"), gin.Mode() == gin.DebugMode)
}

func newLogger(level string, console bool) log.Logger {
	logger := log.Logger{
		Level:      log.InfoLevel,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	if lv := strings.TrimSpace(level); lv != "" {
		logger.Level = log.ParseLevel(strings.ToLower(lv))
	}
	if console {
		logger.Writer = &log.ConsoleWriter{ColorOutput: true, EndWithMessage: true}
	} else {
		logger.Writer = &log.IOWriter{Writer: os.Stderr}
	}
	return logger
}
