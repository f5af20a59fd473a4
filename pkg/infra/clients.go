package infra

import (
	"github.com/stigbase/saver/pkg/domain/interfaces"
	"github.com/stigbase/saver/pkg/infra/bus"
	"github.com/stigbase/saver/pkg/repository/memory"
)

// Clients bundles the external collaborators of the service. Constructed once
// at startup; the repositories and the publisher are long-lived shared
// resources.
type Clients struct {
	artifacts    interfaces.ArtifactRepository
	systemGroups interfaces.SystemGroupRepository
	publisher    interfaces.Publisher
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		artifacts:    memory.NewArtifactRepository(),
		systemGroups: memory.NewSystemGroupRepository(),
		publisher:    bus.NewMemory(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) Artifacts() interfaces.ArtifactRepository {
	return x.artifacts
}
func (x *Clients) SystemGroups() interfaces.SystemGroupRepository {
	return x.systemGroups
}
func (x *Clients) Publisher() interfaces.Publisher {
	return x.publisher
}

func WithArtifactRepository(repo interfaces.ArtifactRepository) Option {
	return func(x *Clients) {
		x.artifacts = repo
	}
}

func WithSystemGroupRepository(repo interfaces.SystemGroupRepository) Option {
	return func(x *Clients) {
		x.systemGroups = repo
	}
}

func WithPublisher(publisher interfaces.Publisher) Option {
	return func(x *Clients) {
		x.publisher = publisher
	}
}
