package media

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/agrilearn/agrilearn/internal/config"
)

var videoExtensions = []string{"mp4", "webm", "mkv", "mov", "avi", "m3u8"}

var videoHosts = []string{"youtube.com", "youtu.be", "vimeo.com"}

// Launcher opens tutorial videos in a local player, falling back to
// the platform opener for anything it cannot play directly.
type Launcher struct {
	videoPlayer   string
	defaultOpener string
	registry      *PlayerRegistry
}

func NewLauncher(cfg *config.Config) *Launcher {
	registry, err := NewPlayerRegistry()
	if err != nil {
		registry = &PlayerRegistry{players: make(map[string]PlayerDefinition)}
	}

	defaultOpener := cfg.Media.DefaultOpener
	if defaultOpener == "" {
		defaultOpener = platformOpener()
	}

	l := &Launcher{
		defaultOpener: defaultOpener,
		registry:      registry,
	}

	var players config.MediaPlayers
	switch runtime.GOOS {
	case "darwin":
		players = cfg.Media.Darwin
	case "linux":
		players = cfg.Media.Linux
	case "windows":
		players = cfg.Media.Windows
	default:
		players = cfg.Media.Linux
	}

	if len(players.Video) > 0 {
		l.videoPlayer = findCommand(players.Video...)
	}
	if l.videoPlayer == "" {
		l.videoPlayer = l.defaultOpener
	}

	return l
}

// Open launches the URL. Video URLs go to the configured player,
// everything else to the platform opener.
func (l *Launcher) Open(rawURL string) error {
	target := NormalizeVideoURL(rawURL)

	opener := l.defaultOpener
	if IsVideoURL(target) {
		opener = l.videoPlayer
	}
	if opener == "" {
		return fmt.Errorf("no application found to open URL")
	}

	cmd, err := l.registry.GetCommand(opener, target)
	if err != nil {
		cmd = exec.Command(opener, target)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", opener, err)
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// IsVideoURL reports whether the URL points at playable video, either
// by extension or by known streaming host.
func IsVideoURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)

	if u, err := url.Parse(lower); err == nil && u.Host != "" {
		host := strings.TrimPrefix(u.Host, "www.")
		for _, h := range videoHosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return true
			}
		}
	}

	ext := ""
	if idx := strings.LastIndex(lower, "."); idx != -1 {
		ext = lower[idx+1:]
		if qIdx := strings.Index(ext, "?"); qIdx != -1 {
			ext = ext[:qIdx]
		}
		if aIdx := strings.Index(ext, "#"); aIdx != -1 {
			ext = ext[:aIdx]
		}
	}
	for _, e := range videoExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// NormalizeVideoURL rewrites embed-style YouTube links to their watch
// form, which desktop players and browsers handle better.
func NormalizeVideoURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	if host == "youtube.com" && strings.HasPrefix(u.Path, "/embed/") {
		id := strings.TrimPrefix(u.Path, "/embed/")
		if id != "" && !strings.Contains(id, "/") {
			return "https://www.youtube.com/watch?v=" + id
		}
	}

	if host == "youtu.be" {
		id := strings.Trim(u.Path, "/")
		if id != "" && !strings.Contains(id, "/") {
			return "https://www.youtube.com/watch?v=" + id
		}
	}

	return rawURL
}

func platformOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

func findCommand(commands ...string) string {
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}
