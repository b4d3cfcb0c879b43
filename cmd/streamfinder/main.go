package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"streamfinder/config"
	"streamfinder/handlers"
)

const shutdownTimeout = 10 * time.Second

var (
	cfgFile string

	cfg       *config.Config
	logCloser io.Closer
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "streamfinder",
	Short: "Find where movies and series are streaming, per country",
	Long: `streamfinder searches TMDB for movies and series and aggregates their
subscription, rental and purchase providers across all countries.

Run "streamfinder serve" for the JSON API and "streamfinder web" for the HTML UI.`,
	Version:       handlers.BuildVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, explicit := cfgFile, cmd.Flags().Changed("config")
		if path == "" {
			path = config.DefaultConfigFile
		}
		var err error
		cfg, err = config.Load(path, explicit)
		if err != nil {
			return err
		}
		logCloser, err = config.InitLogger(cfg.Logging)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./.env)")
	rootCmd.AddCommand(serveCmd, webCmd, searchCmd)
}

// runServer serves h on addr until SIGINT/SIGTERM, then shuts down gracefully.
func runServer(ctx context.Context, name, addr string, h http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[%s] listening on %s", name, addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("[%s] shutting down", name)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
