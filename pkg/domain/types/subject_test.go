package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/stigbase/saver/pkg/domain/types"
)

func TestSubjectSystemUpdate(t *testing.T) {
	gt.V(t, types.SubjectSystemUpdate("abc123")).Equal(types.Subject("system.update.abc123"))

	t.Run("padded id yields the same subject", func(t *testing.T) {
		gt.V(t, types.SubjectSystemUpdate(" abc123 ")).Equal(types.SubjectSystemUpdate("abc123"))
	})
}
