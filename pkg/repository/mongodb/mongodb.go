// Package mongodb implements the artifact and system group repositories on
// MongoDB, one collection per entity.
package mongodb

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stigbase/saver/pkg/domain/interfaces"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionArtifacts    = "artifacts"
	collectionSystemGroups = "systemGroups"
)

// Client owns the MongoDB connection and hands out the two repositories.
// It is constructed once at startup and shared for the process lifetime.
type Client struct {
	client       *mongo.Client
	artifacts    *artifactRepository
	systemGroups *systemGroupRepository
}

// New connects to MongoDB and verifies the connection.
func New(ctx context.Context, uri, database string) (*Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create MongoDB client",
			goerr.V("database", database),
		)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, goerr.Wrap(err, "failed to ping MongoDB",
			goerr.V("database", database),
		)
	}

	db := client.Database(database)

	return &Client{
		client:       client,
		artifacts:    &artifactRepository{collection: db.Collection(collectionArtifacts)},
		systemGroups: &systemGroupRepository{collection: db.Collection(collectionSystemGroups)},
	}, nil
}

func (x *Client) Artifacts() interfaces.ArtifactRepository {
	return x.artifacts
}

func (x *Client) SystemGroups() interfaces.SystemGroupRepository {
	return x.systemGroups
}

func (x *Client) Close(ctx context.Context) error {
	if err := x.client.Disconnect(ctx); err != nil {
		return goerr.Wrap(err, "failed to disconnect from MongoDB")
	}
	return nil
}
