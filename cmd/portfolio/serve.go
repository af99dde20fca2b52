package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhinavshiv7/portfolio/internal/config"
	"github.com/abhinavshiv7/portfolio/internal/contact"
	"github.com/abhinavshiv7/portfolio/internal/events"
	"github.com/abhinavshiv7/portfolio/internal/logging"
	"github.com/abhinavshiv7/portfolio/internal/mailer"
	"github.com/abhinavshiv7/portfolio/internal/server"
	"github.com/abhinavshiv7/portfolio/internal/store"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the site",
	Long: `Serve the site until interrupted. Open connections are given a few
seconds to finish on SIGINT or SIGTERM.

Without SMTP_USER and SMTP_PASS confirmation emails are logged instead of
sent. Without NATS_URL no contact events are published.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (default 8080)")
	_ = v.BindPFlag(config.KeyPort, serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)

	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	logger.Info().Str("dialect", st.Dialect().String()).Msg("store ready")

	var m mailer.Mailer
	if cfg.SMTP.Enabled() {
		m = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.User,
			Password: cfg.SMTP.Pass,
			From:     cfg.SMTP.From,
		})
	} else {
		logger.Warn().Msg("SMTP credentials not configured, emails will be logged")
		m = mailer.NewLogMailer(logging.Component(logger, "mailer"))
	}
	var nopts []mailer.NotifierOption
	if cfg.OwnerEmail != "" {
		nopts = append(nopts, mailer.WithOwnerCopy(cfg.OwnerEmail))
	}
	notifier := mailer.NewNotifier(m, logger, nopts...)

	pub, err := events.New(cfg.NATSURL)
	if err != nil {
		return fmt.Errorf("connect events: %w", err)
	}
	defer pub.Close()

	srv, err := server.New(server.Options{
		Contacts:       contact.NewService(st, notifier, pub, logger),
		Reader:         st,
		Log:            logger,
		ContactTimeout: cfg.ContactTimeout,
		AdminUsername:  cfg.AdminUsername,
		AdminPassword:  cfg.AdminPassword,
		SecureCookies:  cfg.GinMode == gin.ReleaseMode,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Bool("admin", cfg.AdminEnabled()).Msg("listening")
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
