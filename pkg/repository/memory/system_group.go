package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/types"
	"github.com/stigbase/saver/pkg/repository"
)

func (r *systemGroupRepository) Get(ctx context.Context, id types.SystemGroupID) (*model.SystemGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group, exists := r.groups[string(id)]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "system group not found",
			goerr.V("systemGroupID", id),
		)
	}

	return copySystemGroup(group), nil
}

func (r *systemGroupRepository) List(ctx context.Context) ([]*model.SystemGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var groups []*model.SystemGroup
	for _, group := range r.groups {
		groups = append(groups, copySystemGroup(group))
	}

	return groups, nil
}

func (r *systemGroupRepository) Add(ctx context.Context, group *model.SystemGroup) (*model.SystemGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copySystemGroup(group)
	stored.ID = types.SystemGroupID(uuid.NewString())
	r.groups[string(stored.ID)] = stored

	return copySystemGroup(stored), nil
}

func (r *systemGroupRepository) Replace(ctx context.Context, id types.SystemGroupID, group *model.SystemGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.groups[string(id)]; !exists {
		return goerr.Wrap(repository.ErrNotFound, "system group not found",
			goerr.V("systemGroupID", id),
		)
	}

	stored := copySystemGroup(group)
	stored.ID = id
	r.groups[string(id)] = stored

	return nil
}

func (r *systemGroupRepository) Delete(ctx context.Context, id types.SystemGroupID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.groups[string(id)]; !exists {
		return goerr.Wrap(repository.ErrNotFound, "system group not found",
			goerr.V("systemGroupID", id),
		)
	}

	delete(r.groups, string(id))

	return nil
}
