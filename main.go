// This is the main entry point of the student records service.
// It's responsible for loading configuration, wiring the record store, the
// auth filter and the CRUD handlers into the HTTP router, and starting the
// HTTP server. It also handles graceful shutdown, and offers a `token`
// command to mint credentials for callers.
//
// @title Student Records API
// @version 1.0
// @description CRUD over student records stored in a single JSON document, gated by a signed token.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.apikey TokenAuth
// @in header
// @name X-Auth-Token
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// `godotenv` loads environment variables from a .env file, useful for development.
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/user/studentsvc/auth"
	"github.com/user/studentsvc/config"
	"github.com/user/studentsvc/logging"
	"github.com/user/studentsvc/server"
	"github.com/user/studentsvc/store"
	"github.com/user/studentsvc/students"
	"github.com/user/studentsvc/users"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "studentsvc",
		Usage: "serve student records over HTTP",
		Before: func(c *cli.Context) error {
			// In production, variables are usually set directly; a missing .env is fine.
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.Printf("Warning: error loading .env file: %v", err)
			}
			return nil
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server",
				Action: serve,
			},
			{
				Name:  "token",
				Usage: "mint a credential for the X-Auth-Token header",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "user", Usage: "user id to put in the token", Required: true},
					&cli.DurationFlag{Name: "ttl", Usage: "token lifetime (default AUTH_TOKEN_DURATION)"},
				},
				Action: mintToken,
			},
		},
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	slogger, err := logging.NewSlog(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	logger := logging.NewSlogLogger(slogger)

	// Manual dependency injection: store -> service -> handlers -> router.
	recordStore := store.NewFileStore(cfg.Store.Path, logger)
	studentService := students.NewService(recordStore, logger, cfg.Store.SerializeWrites)
	studentHandlers := students.NewHandlers(studentService, logger)
	tokens := auth.NewTokenService(*cfg.Auth)

	srv := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: server.NewRouter(cfg, server.Deps{
			Tokens:   tokens,
			Students: studentHandlers,
			Users:    users.NewUserHandlers(),
			Logger:   logger,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info(gctx, "server starting",
			"addr", srv.Addr,
			"store", recordStore.Path(),
			"serialize_writes", cfg.Store.SerializeWrites,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info(context.Background(), "server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info(context.Background(), "server stopped gracefully")
		return nil
	})

	return g.Wait()
}

func mintToken(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ttl := cfg.Auth.TokenDuration
	if c.IsSet("ttl") {
		ttl = c.Duration("ttl")
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}

	token, expiresAt, err := auth.NewTokenService(*cfg.Auth).IssueFor(c.Int64("user"), ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, token)
	fmt.Fprintf(c.App.ErrWriter, "expires %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
