package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerRegistry(t *testing.T) {
	registry, err := NewPlayerRegistry()
	require.NoError(t, err)
	require.NotNil(t, registry)

	_, ok := registry.players["mpv"]
	assert.True(t, ok, "built-in definitions should include mpv")
}

func TestGetCommandKnownPlayer(t *testing.T) {
	registry, err := NewPlayerRegistry()
	require.NoError(t, err)

	cmd, err := registry.GetCommand("mpv", "https://example.com/video.mp4")
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Contains(t, cmd.Args, "https://example.com/video.mp4")
}

func TestGetCommandUnknownPlayerFallsBack(t *testing.T) {
	registry, err := NewPlayerRegistry()
	require.NoError(t, err)

	cmd, err := registry.GetCommand("someplayer", "https://example.com/video.mp4")
	require.NoError(t, err)
	assert.Equal(t, []string{"someplayer", "https://example.com/video.mp4"}, cmd.Args)
}

func TestGetArgsPlatformOverride(t *testing.T) {
	registry := &PlayerRegistry{players: map[string]PlayerDefinition{}}

	config := &VideoConfig{
		Args:        []string{"--generic"},
		ArgsDarwin:  []string{"--darwin"},
		ArgsLinux:   []string{"--linux"},
		ArgsWindows: []string{"--windows"},
	}

	args := registry.getArgs(config)
	assert.NotEqual(t, []string{"--generic"}, args, "platform args should take precedence")

	assert.Nil(t, registry.getArgs(nil))
}
