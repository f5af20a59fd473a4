package interfaces

import "github.com/stigbase/saver/pkg/domain/types"

// Publisher sends fire-and-forget notification events. No delivery guarantee:
// callers log failures and never roll back the store mutation that preceded
// the publish.
type Publisher interface {
	Publish(subject types.Subject, data []byte) error
}
