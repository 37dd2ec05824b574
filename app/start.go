package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/pizza-walk/app/observability/attr"
)

const shutdownTimeout = 15 * time.Second

// Start runs the modules and serves HTTP until ctx is cancelled.
func (app *App) Start(ctx context.Context) error {
	logger := app.Observability.Provider.Logger

	app.wg.Add(1)
	go app.LeaderboardModule.Run(ctx, &app.wg)
	if app.UserModule != nil {
		app.wg.Add(1)
		go app.UserModule.Run(ctx, &app.wg)
	}

	srv := &http.Server{
		Addr:         app.Config.HTTP.Addr,
		Handler:      app.Router,
		ReadTimeout:  app.Config.HTTP.ReadTimeout,
		WriteTimeout: app.Config.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", attr.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
