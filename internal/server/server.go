package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
	"github.com/phuslu/log"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/validation"
)

// DefaultPort is used when PORT is unset or invalid
const DefaultPort = 8080

// MyServer holds the dependencies shared by every route
type MyServer struct {
	DB        *database.DBinstanceStruct
	Blacklist auth.JwtBlacklistStore
}

// NewServer connects to the database, which migrates it, and builds the http server.
// ctx bounds background work such as token blacklist cleanup.
func NewServer(ctx context.Context) (*http.Server, error) {
	if err := validation.Register(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	db, err := database.GetMainDB()
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	s := &MyServer{
		DB:        db,
		Blacklist: auth.NewInMemoryBlacklistStore(ctx),
	}

	port := listenPort(os.Getenv("PORT"))
	log.Info().Int("port", port).Msg("server configured")

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}

func listenPort(raw string) int {
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return DefaultPort
	}
	return port
}
