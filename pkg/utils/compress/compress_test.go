package compress_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/stigbase/saver/pkg/utils/compress"
)

func TestGzipRoundTrip(t *testing.T) {
	original := []byte(`{"program":"saver-api","action":"delete system"}`)

	packed := gt.R1(compress.Gzip(original)).NoError(t)
	gt.V(t, string(packed)).NotEqual(string(original))

	unpacked := gt.R1(compress.Gunzip(packed)).NoError(t)
	gt.V(t, string(unpacked)).Equal(string(original))
}

func TestGunzipRejectsGarbage(t *testing.T) {
	_, err := compress.Gunzip([]byte("not gzip data"))
	gt.Error(t, err)
}
