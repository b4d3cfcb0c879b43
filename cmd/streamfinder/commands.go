package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"streamfinder/api"
	"streamfinder/internal/metrics"
	"streamfinder/services/metadata"
	"streamfinder/services/presenter"
)

const sessionSweepInterval = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the search API and serve the public directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.TMDB.APIKey == "" {
			log.Printf("[metadata] warning: TMDB_API_KEY is not set; searches will fail")
		}
		reg := metrics.New()
		svc := metadata.NewService(cfg.TMDB, cfg.Search, nil, reg)
		router := api.NewAggregatorRouter(svc, afero.NewOsFs(), cfg.Server.PublicDir, reg)
		return runServer(cmd.Context(), "http", cfg.Server.Addr(), router)
	},
}

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Run the HTML UI against a running search API",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := presenter.NewBackendClient(cfg.Web.APIBase, cfg.Web.APIFallbacks, 0)
		log.Printf("[web] backend candidates: %s", strings.Join(backend.Bases(), ", "))

		sessions := presenter.NewSessionStore(presenter.DefaultSessionTTL)
		go sessions.Run(cmd.Context(), sessionSweepInterval)

		return runServer(cmd.Context(), "web", cfg.Web.Addr(), api.NewWebRouter(sessions, backend))
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search from the terminal through the search API",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := presenter.NewBackendClient(cfg.Web.APIBase, cfg.Web.APIFallbacks, 0)
		sess := &presenter.Session{}
		sess.Search(cmd.Context(), backend, strings.Join(args, " "))

		view := sess.View()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, view.Status)
		for _, card := range view.Cards {
			fmt.Fprintf(out, "\n%s (%s)\n", card.Title, card.Meta)
			fmt.Fprintf(out, "  %s\n", card.Countries)
			names := make([]string, 0, len(card.Chips))
			for _, chip := range card.Chips {
				names = append(names, chip.Name)
			}
			line := strings.Join(names, ", ")
			if card.MoreProviders != "" {
				line += " " + card.MoreProviders
			}
			fmt.Fprintf(out, "  %s\n", line)
		}
		return nil
	},
}
