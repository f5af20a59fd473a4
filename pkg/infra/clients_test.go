package infra_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/stigbase/saver/pkg/infra"
	"github.com/stigbase/saver/pkg/infra/bus"
)

func TestNewDefaults(t *testing.T) {
	clients := infra.New()

	gt.V(t, clients.Artifacts()).NotEqual(nil)
	gt.V(t, clients.SystemGroups()).NotEqual(nil)
	gt.V(t, clients.Publisher()).NotEqual(nil)
}

func TestWithPublisher(t *testing.T) {
	recorder := bus.NewMemory()
	clients := infra.New(infra.WithPublisher(recorder))

	gt.NoError(t, clients.Publisher().Publish("test.subject", []byte("payload")))
	gt.A(t, recorder.Events()).Length(1)
	gt.V(t, string(recorder.Events()[0].Data)).Equal("payload")
}
