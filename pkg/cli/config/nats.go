package config

import (
	"log/slog"

	"github.com/stigbase/saver/pkg/infra/bus"
	"github.com/urfave/cli/v3"
)

type NATS struct {
	url        string
	clientName string
}

func (x *NATS) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "nats-url",
			Usage:       "NATS server URL (optional, events are dropped in-process when unset)",
			Category:    "NATS",
			Sources:     cli.EnvVars("SAVER_NATS_URL"),
			Destination: &x.url,
		},
		&cli.StringFlag{
			Name:        "nats-client-name",
			Usage:       "NATS client connection name",
			Category:    "NATS",
			Sources:     cli.EnvVars("SAVER_NATS_CLIENT_NAME"),
			Value:       "saver-api",
			Destination: &x.clientName,
		},
	}
}

func (x *NATS) Enabled() bool {
	return x.url != ""
}

func (x *NATS) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("URL", x.url),
		slog.Any("ClientName", x.clientName),
	)
}

func (x *NATS) NewPublisher() (*bus.NATSPublisher, error) {
	return bus.NewNATS(x.url, x.clientName)
}
