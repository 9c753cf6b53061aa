package news

import (
	"crypto/sha256"
	_ "embed"
	"fmt"
	"net/url"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sources.toml
var defaultSourcesTOML []byte

// Source is one external agri-news feed.
type Source struct {
	ID   string
	Name string
	URL  string
}

type sourcesFile struct {
	Sources []struct {
		Name string `toml:"name"`
		URL  string `toml:"url"`
	} `toml:"sources"`
}

// DefaultSources returns the built-in feed list.
func DefaultSources() ([]Source, error) {
	var file sourcesFile
	if err := toml.Unmarshal(defaultSourcesTOML, &file); err != nil {
		return nil, fmt.Errorf("parsing default sources: %w", err)
	}

	sources := make([]Source, 0, len(file.Sources))
	for _, s := range file.Sources {
		sources = append(sources, Source{
			ID:   sourceID(s.URL),
			Name: s.Name,
			URL:  s.URL,
		})
	}
	return sources, nil
}

// MergeSources appends user-configured feed URLs to the defaults,
// skipping duplicates.
func MergeSources(defaults []Source, extraURLs []string) []Source {
	seen := make(map[string]bool, len(defaults))
	out := make([]Source, 0, len(defaults)+len(extraURLs))
	for _, s := range defaults {
		seen[s.ID] = true
		out = append(out, s)
	}
	for _, raw := range extraURLs {
		id := sourceID(raw)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, Source{ID: id, Name: sourceName(raw), URL: raw})
	}
	return out
}

func sourceID(rawURL string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(rawURL)))
}

func sourceName(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return u.Host
	}
	return rawURL
}
