package headless

import (
	"testing"

	"github.com/joule-systems/pocketgb/backend"
	"github.com/joule-systems/pocketgb/video"
	"github.com/stretchr/testify/assert"
)

func TestHeadless_presentNeverRequestsShutdown(t *testing.T) {
	b := New()
	require := assert.New(t)
	require.NoError(b.Init(backend.Config{}))

	fb := video.NewFrameBuffer()
	events, shutdown, err := b.Present(fb)

	require.NoError(err)
	require.False(shutdown)
	require.Empty(events)
	require.Equal(1, b.FramesPresented())
	require.Equal(fb, b.LastFrame())
}

func TestHeadless_cleanupIsNoOp(t *testing.T) {
	b := New()
	assert.NoError(t, b.Cleanup())
}
