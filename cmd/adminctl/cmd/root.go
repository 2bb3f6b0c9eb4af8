// Package cmd holds the adminctl command tree.
package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aqarhub/go-admin-client/apiclient"
	"github.com/aqarhub/go-admin-client/authapi"
	"github.com/aqarhub/go-admin-client/credentials/filerepo"
	"github.com/aqarhub/go-admin-client/internal/config"
	"github.com/aqarhub/go-admin-client/refresh"
	"github.com/aqarhub/go-admin-client/routeguard"
	"github.com/aqarhub/go-admin-client/session"
	"github.com/aqarhub/go-admin-client/transport"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "adminctl",
	Short: "CLI for the Aqar admin backend",
	Long: `adminctl drives the estate-admin backend from the command line: it logs
in, keeps the session fresh across token expiry, and exposes the content
and request-queue surfaces the admin screens use.

Environment Variables:
  API_BASE_URL  Backend API root (default: http://localhost:5000/api)
  FOLDER        Credential store directory (default: ./data)
  TENANT        Tenant header value (default: root)`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// App bundles the wired client stack each command runs against.
type App struct {
	Config      config.Config
	Logger      zerolog.Logger
	Session     *session.Manager
	Coordinator *refresh.Coordinator
	Guard       *routeguard.Guard

	// API issues calls through the authenticated transport.
	API *apiclient.Client
}

// newApp assembles the full client stack: credential store, session
// manager, refresh coordinator, and the authenticated transport.
func newApp() (*App, error) {
	cfg := config.New()

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	repo, err := filerepo.New(cfg.GetDataFolder(), logger)
	if err != nil {
		return nil, errors.Wrap(err, "[newApp] credential store")
	}

	// Token-endpoint calls ride a plain client so an authorization failure
	// there never re-enters the refresh pipeline.
	plainClient := &http.Client{Timeout: time.Duration(cfg.GetRequestTimeoutSeconds()) * time.Second}
	plainAPI, err := apiclient.New(cfg.GetAPIBaseURL(), plainClient)
	if err != nil {
		return nil, errors.Wrap(err, "[newApp] auth api client")
	}
	authAPI, err := authapi.New(plainAPI)
	if err != nil {
		return nil, errors.Wrap(err, "[newApp] auth api")
	}

	sessionManager, err := session.NewManager(repo, authAPI, session.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "[newApp] session manager")
	}

	coordinator := refresh.NewCoordinator(sessionManager,
		refresh.WithTimeout(time.Duration(cfg.GetRefreshTimeoutSeconds())*time.Second),
		refresh.WithLogger(logger),
		refresh.WithExpiryHook(func() {
			fmt.Fprintln(os.Stderr, "Session expired, please log in again.")
		}),
	)

	authenticator, err := transport.NewAuthenticator(sessionManager, coordinator,
		transport.WithTenant(cfg.GetTenant()),
		transport.WithLogger(logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[newApp] authenticator")
	}

	authedClient := &http.Client{
		Transport: authenticator,
		Timeout:   time.Duration(cfg.GetRequestTimeoutSeconds()) * time.Second,
	}
	api, err := apiclient.New(cfg.GetAPIBaseURL(), authedClient)
	if err != nil {
		return nil, errors.Wrap(err, "[newApp] api client")
	}

	guard, err := routeguard.NewGuard(sessionManager)
	if err != nil {
		return nil, errors.Wrap(err, "[newApp] route guard")
	}

	return &App{
		Config:      cfg,
		Logger:      logger,
		Session:     sessionManager,
		Coordinator: coordinator,
		Guard:       guard,
		API:         api,
	}, nil
}
