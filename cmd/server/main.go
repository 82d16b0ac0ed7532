package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-session-auth/auth"
	"github.com/jrsteele09/go-session-auth/authsvc"
	"github.com/jrsteele09/go-session-auth/internal/config"
	"github.com/jrsteele09/go-session-auth/server"
	"github.com/jrsteele09/go-session-auth/sessions/memstore"
	"github.com/jrsteele09/go-session-auth/sessions/redisstore"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/jrsteele09/go-session-auth/users/inmemoryrepo"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load() // load .env if present (ok if missing in prod)

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	handler, err := buildServer(c)
	if err != nil {
		return fmt.Errorf("buildServer: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildServer(c config.Config) (*server.Server, error) {
	userRepo := inmemoryrepo.New()

	authenticator, err := buildAuthenticator(c, userRepo)
	if err != nil {
		return nil, fmt.Errorf("buildAuthenticator: %w", err)
	}
	log.Info().Str("auth_type", c.GetAuthType()).Msg("authenticator selected")

	accounts, err := authsvc.New(userRepo)
	if err != nil {
		return nil, fmt.Errorf("authsvc.New: %w", err)
	}

	return server.New(c, authenticator, accounts, userRepo)
}

// buildAuthenticator selects the strategy configured by AUTH_TYPE. The
// expiring and persisted variants differ only in the session store wired
// into the session strategy.
func buildAuthenticator(c config.Config, userRepo users.Repo) (auth.Authenticator, error) {
	cookieName := c.GetSessionCookieName()
	duration := time.Duration(c.GetSessionDuration()) * time.Second

	switch c.GetAuthType() {
	case "basic_auth":
		return auth.NewBasic(userRepo, cookieName)
	case "session_auth":
		return auth.NewSession(userRepo, memstore.New(0), cookieName)
	case "session_exp_auth":
		return auth.NewSession(userRepo, memstore.New(duration), cookieName)
	case "session_db_auth":
		client := redis.NewClient(&redis.Options{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
		})
		return auth.NewSession(userRepo, redisstore.New(client, duration), cookieName)
	default:
		return auth.NewNone(cookieName), nil
	}
}

func setupLogging(c config.Config) {
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func listenAndServe(httpServer *http.Server) error {
	log.Info().Str("addr", httpServer.Addr).Msg("Server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
