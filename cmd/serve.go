package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifechronicles/chronicler/internal/geocode"
	"github.com/lifechronicles/chronicler/internal/handlers"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web API for article and story generation",
		Long: `Starts the Chronicler API on the specified port.

The API accepts photo analyses and EXIF context and generates illustrated
articles and multi-photo day stories in English or Tamil.`,
		Example: `  # Start server on default port 8888
  chronicler serve

  # Start server on custom port
  chronicler serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("port") && cfg.Port != "" {
				port = cfg.Port
			}

			composer, err := newComposer(cfg)
			if err != nil {
				return err
			}
			geocoder := geocode.NewClientWithConfig(
				cfg.Nominatim.BaseURL, cfg.Nominatim.UserAgent, cfg.Nominatim.Email)
			handler := handlers.New(composer, composer, geocoder)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/articles", handler.HandleArticles)
			mux.HandleFunc("/api/articles/", handler.HandleArticleDetail)
			mux.HandleFunc("/api/stories", handler.HandleStories)
			mux.HandleFunc("/api/stories/", handler.HandleStoryDetail)
			mux.HandleFunc("/api/shared/", handler.HandleSharedStory)
			mux.HandleFunc("/api/geocode/search", handler.HandleGeocodeSearch)
			mux.HandleFunc("/api/geocode/reverse", handler.HandleGeocodeReverse)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Chronicler API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
