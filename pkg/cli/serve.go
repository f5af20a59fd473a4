package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/stigbase/saver/pkg/cli/config"
	"github.com/stigbase/saver/pkg/controller/server"
	"github.com/stigbase/saver/pkg/infra"
	"github.com/stigbase/saver/pkg/usecase"
	"github.com/stigbase/saver/pkg/utils/logging"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr string

		mongo     config.Mongo
		natsCfg   config.NATS
		sentryCfg config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("SAVER_ADDR"),
			Destination: &addr,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			mongo.Flags(),
			natsCfg.Flags(),
			sentryCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("Mongo", mongo),
				slog.Any("NATS", natsCfg),
				slog.Any("Sentry", sentryCfg),
			)

			if err := sentryCfg.Configure(ctx); err != nil {
				return err
			}

			var infraOptions []infra.Option

			if mongo.Enabled() {
				mongoClient, err := mongo.NewClient(ctx)
				if err != nil {
					return err
				}
				defer func() {
					if err := mongoClient.Close(context.Background()); err != nil {
						logging.Default().Warn("failed to close mongodb client", "error", err)
					}
				}()

				infraOptions = append(infraOptions,
					infra.WithArtifactRepository(mongoClient.Artifacts()),
					infra.WithSystemGroupRepository(mongoClient.SystemGroups()),
				)
			} else {
				logging.Default().Warn("mongodb is not configured, using in-memory store")
			}

			if natsCfg.Enabled() {
				publisher, err := natsCfg.NewPublisher()
				if err != nil {
					return err
				}
				defer publisher.Close()

				infraOptions = append(infraOptions, infra.WithPublisher(publisher))
			} else {
				logging.Default().Warn("nats is not configured, events stay in-process")
			}

			clients := infra.New(infraOptions...)

			uc := usecase.New(clients)
			s := server.New(uc)

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
