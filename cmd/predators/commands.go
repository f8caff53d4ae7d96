package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nainya/predators/internal/server"
	"github.com/nainya/predators/pkg/catalog"
	"github.com/nainya/predators/pkg/predator"
	"github.com/nainya/predators/pkg/query"
)

func newListCmd(a *app) *cobra.Command {
	var category, sortMode, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List predators (filter, then sort, then search)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := query.ParseCategoryFilter(category)
			if err != nil {
				return err
			}
			mode, err := query.ParseSortMode(sortMode)
			if err != nil {
				return err
			}

			cat, err := a.openCatalog()
			if err != nil {
				return a.unavailable(cmd, err)
			}

			q := query.NewQueryBuilder().
				Filter(filter).
				SortBy(mode).
				Search(search).
				Build()

			view := cat.Apply(q)
			a.log.Debug("Rendering view").
				Str("category", q.Filter.String()).
				Str("sort", q.Sort.String()).
				Int("records", len(view)).
				Send()
			return renderList(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "all", "category: all, land, air, sea")
	cmd.Flags().StringVarP(&sortMode, "sort", "s", "none", "sort: none, alphabetical, id")
	cmd.Flags().StringVarP(&search, "search", "q", "", "case-insensitive name substring")

	return cmd
}

// unavailable renders the unavailable state and reports the load failure
func (a *app) unavailable(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.OutOrStdout(), "Predator catalog unavailable.")
	a.log.Error("Predator catalog unavailable").
		Str("command", cmd.Name()).
		Err(err).
		Send()
	return err
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one predator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}

			cat, err := a.openCatalog()
			if err != nil {
				return a.unavailable(cmd, err)
			}

			r, err := cat.Lookup(id)
			if err != nil {
				return err
			}
			return renderDetail(cmd.OutOrStdout(), r)
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts per category and diet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.openCatalog()
			if err != nil {
				return a.unavailable(cmd, err)
			}

			s := cat.Stats()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "total\t%d\n", s.Total)
			for _, c := range predator.Categories {
				fmt.Fprintf(w, "%s\t%d\n", c, s.ByCategory[c])
			}
			fmt.Fprintf(w, "%s\t%d\n", predator.Carnivore, s.ByDiet[predator.Carnivore])
			fmt.Fprintf(w, "%s\t%d\n", predator.Herbivore, s.ByDiet[predator.Herbivore])
			return w.Flush()
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the catalog and expose /metrics, /health and /ready",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.MetricsAddr == "" {
				return errors.New("serve requires --metrics-addr or PREDATORS_METRICS_ADDR")
			}

			// A failed load keeps serving so /ready can report it
			cat, err := a.openCatalog()
			if err != nil {
				a.log.CatalogLogger("load").Warn("Serving unavailable catalog").Err(err).Send()
			}

			obs := server.NewObservabilityServer(a.cfg.MetricsAddr, a.registry, cat, a.log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- obs.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return obs.Shutdown(shutdownCtx)
		},
	}
}

func renderList(out io.Writer, view query.View) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tDIET\tKEY")
	for _, r := range view {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Category, r.Diet, r.DisplayKey())
	}
	return w.Flush()
}

func renderDetail(out io.Writer, r predator.Record) error {
	loc := r.Location()

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%d\n", r.ID)
	fmt.Fprintf(w, "name\t%s\n", r.Name)
	fmt.Fprintf(w, "type\t%s\n", r.Category)
	fmt.Fprintf(w, "diet\t%s\n", r.Diet)
	fmt.Fprintf(w, "location\t%.4f, %.4f\n", loc.Latitude, loc.Longitude)
	fmt.Fprintf(w, "height\t%s\n", r.Measurements.Height)
	fmt.Fprintf(w, "length\t%s\n", r.Measurements.Length)
	fmt.Fprintf(w, "weight\t%s\n", r.Measurements.Weight)
	fmt.Fprintf(w, "movies\t%s\n", strings.Join(r.Movies, "; "))
	for _, s := range r.Scenes {
		fmt.Fprintf(w, "scene %d\t%s: %s\n", s.ID, s.Movie, s.Description)
	}
	fmt.Fprintf(w, "link\t%s\n", r.Link)
	return w.Flush()
}

var _ server.Readiness = (*catalog.Catalog)(nil)
