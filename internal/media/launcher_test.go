package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrilearn/agrilearn/internal/config"
)

func TestNewLauncher(t *testing.T) {
	l := NewLauncher(config.TestConfig())
	require.NotNil(t, l)
	assert.NotEmpty(t, l.defaultOpener)
	assert.NotNil(t, l.registry)
}

func TestIsVideoURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{
			name: "mp4 file",
			url:  "https://cdn.example.com/tutorial.mp4",
			want: true,
		},
		{
			name: "mp4 with query params",
			url:  "https://cdn.example.com/tutorial.mp4?token=abc",
			want: true,
		},
		{
			name: "youtube watch link",
			url:  "https://www.youtube.com/watch?v=abc123",
			want: true,
		},
		{
			name: "youtu.be short link",
			url:  "https://youtu.be/abc123",
			want: true,
		},
		{
			name: "vimeo link",
			url:  "https://vimeo.com/123456",
			want: true,
		},
		{
			name: "article page",
			url:  "https://example.com/articles/42",
			want: false,
		},
		{
			name: "image",
			url:  "https://example.com/photo.jpg",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVideoURL(tt.url))
		})
	}
}

func TestNormalizeVideoURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "embed link rewritten",
			url:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name: "short link rewritten",
			url:  "https://youtu.be/dQw4w9WgXcQ",
			want: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name: "watch link untouched",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name: "other host untouched",
			url:  "https://vimeo.com/123456",
			want: "https://vimeo.com/123456",
		},
		{
			name: "not a URL untouched",
			url:  "not a url",
			want: "not a url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeVideoURL(tt.url))
		})
	}
}
