// Package memory provides in-memory repository implementations, used by
// tests and as a degraded mode when no document store is configured.
package memory

import (
	"sync"

	"github.com/stigbase/saver/pkg/domain/interfaces"
	"github.com/stigbase/saver/pkg/domain/model"
)

// NewArtifactRepository creates an in-memory artifact store.
func NewArtifactRepository() interfaces.ArtifactRepository {
	return &artifactRepository{
		artifacts: make(map[string]*model.Artifact),
	}
}

// NewSystemGroupRepository creates an in-memory system group store.
func NewSystemGroupRepository() interfaces.SystemGroupRepository {
	return &systemGroupRepository{
		groups: make(map[string]*model.SystemGroup),
	}
}

type artifactRepository struct {
	mu        sync.RWMutex
	artifacts map[string]*model.Artifact
}

type systemGroupRepository struct {
	mu     sync.RWMutex
	groups map[string]*model.SystemGroup
}

func copyArtifact(a *model.Artifact) *model.Artifact {
	dup := *a
	return &dup
}

func copySystemGroup(g *model.SystemGroup) *model.SystemGroup {
	dup := *g
	return &dup
}
