package usecase

import (
	"github.com/stigbase/saver/pkg/domain/interfaces"
	"github.com/stigbase/saver/pkg/infra"
)

// UseCase coordinates the multi-step lifecycle workflows: cascading deletes,
// rename propagation, audit emission. Store mutations commit first; events
// are advisory and never roll a mutation back.
type UseCase struct {
	clients *infra.Clients
}

var _ interfaces.UseCase = &UseCase{}

func New(clients *infra.Clients) *UseCase {
	return &UseCase{
		clients: clients,
	}
}
