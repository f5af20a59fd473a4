package config

import (
	"context"
	"log/slog"

	"github.com/stigbase/saver/pkg/repository/mongodb"
	"github.com/urfave/cli/v3"
)

type Mongo struct {
	uri      string
	database string
}

func (x *Mongo) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mongo-uri",
			Usage:       "MongoDB connection URI (optional, in-memory store is used when unset)",
			Category:    "MongoDB",
			Sources:     cli.EnvVars("SAVER_MONGO_URI"),
			Destination: &x.uri,
		},
		&cli.StringFlag{
			Name:        "mongo-database",
			Usage:       "MongoDB database name",
			Category:    "MongoDB",
			Sources:     cli.EnvVars("SAVER_MONGO_DATABASE"),
			Value:       "saver",
			Destination: &x.database,
		},
	}
}

func (x *Mongo) Enabled() bool {
	return x.uri != ""
}

func (x *Mongo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("URI", x.uri),
		slog.Any("Database", x.database),
	)
}

func (x *Mongo) NewClient(ctx context.Context) (*mongodb.Client, error) {
	return mongodb.New(ctx, x.uri, x.database)
}
