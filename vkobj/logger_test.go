package vkobj

import (
	"testing"

	"github.com/ibd1279/vks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetLoggerNil(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	SetLogger(nil)
	require.NotNil(t, Logger())

	panicky := NewObject(struct{}{}, Buffer{H: fakeHandle[vks.Buffer](0x15)}, deleterFunc[Buffer](func(Buffer) error {
		panic("driver lost")
	}))
	assert.NotPanics(t, panicky.Close)
	assert.True(t, panicky.IsNull())
}

func TestSetLogger(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	l := zap.NewExample()
	SetLogger(l)
	assert.Same(t, l, Logger())
}
