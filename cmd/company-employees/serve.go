package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/technopolitica/company-employees/internal/config"
	"github.com/technopolitica/company-employees/internal/db"
	"github.com/technopolitica/company-employees/internal/domain"
	"github.com/technopolitica/company-employees/internal/memstore"
	"github.com/technopolitica/company-employees/internal/metrics"
	"github.com/technopolitica/company-employees/internal/server"
	"github.com/technopolitica/company-employees/internal/service"
	"golang.org/x/sync/errgroup"
)

type serveOptions struct {
	port            int
	storage         string
	defaultPageSize int
	maxPageSize     int
}

type repositories struct {
	companies domain.CompanyRepository
	employees domain.EmployeeRepository
	close     func()
}

func openRepositories(ctx context.Context, cfg config.Config) (repos repositories, err error) {
	if cfg.Server.Storage == config.StorageMemory {
		store := memstore.New()
		err = store.Seed(ctx)
		repos = repositories{companies: store, employees: store, close: func() {}}
		return
	}
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		err = fmt.Errorf("failed to connect to database: %w", err)
		return
	}
	repo := db.NewRepository(pool)
	repos = repositories{companies: repo, employees: repo, close: pool.Close}
	return
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var serveOpts serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("port") {
				cfg.Server.Port = serveOpts.port
			}
			if flags.Changed("storage") {
				cfg.Server.Storage = serveOpts.storage
			}
			if flags.Changed("default-page-size") {
				cfg.Paging.DefaultPageSize = serveOpts.defaultPageSize
			}
			if flags.Changed("max-page-size") {
				cfg.Paging.MaxPageSize = serveOpts.maxPageSize
			}
			err = cfg.Validate()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			repos, err := openRepositories(ctx, cfg)
			if err != nil {
				return err
			}
			defer repos.close()

			router := server.New(&server.Env{
				Companies:      service.NewCompanies(repos.companies),
				Employees:      service.NewEmployees(repos.companies, repos.employees),
				Limits:         cfg.PagingLimits(),
				Logger:         logger,
				Metrics:        metrics.New(),
				RequestTimeout: cfg.Server.RequestTimeout,
			})
			listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
			if err != nil {
				return fmt.Errorf("failed to listen on specified address: %w", err)
			}
			httpServer := &http.Server{
				Handler:           router,
				ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
			}

			group, ctx := errgroup.WithContext(ctx)
			group.Go(func() error {
				logger.Info().Str("storage", cfg.Server.Storage).Msgf("listening on http://%s...", listener.Addr())
				err := httpServer.Serve(listener)
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			})
			group.Go(func() error {
				<-ctx.Done()
				logger.Info().Msg("shutting down...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			})
			return group.Wait()
		},
	}
	cmd.Flags().IntVar(&serveOpts.port, "port", 0, "port to listen on")
	cmd.Flags().StringVar(&serveOpts.storage, "storage", config.StoragePostgres, "backing store: postgres or memory")
	cmd.Flags().IntVar(&serveOpts.defaultPageSize, "default-page-size", 0, "page size used when a request does not specify one")
	cmd.Flags().IntVar(&serveOpts.maxPageSize, "max-page-size", 0, "largest page size a request may ask for")
	return cmd
}
