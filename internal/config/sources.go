package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sources is the YAML source list structure:
//
//	window_hours: 24
//	max_items_per_source: 30
//	search:
//	  keywords: ["golang"]
//	social:
//	  subreddits: ["golang"]
//	feeds:
//	  - name: "Go Blog"
//	    url: "https://go.dev/blog/feed.atom"
//	    category: "golang"
//	    keywords: ["release"]
type Sources struct {
	WindowHours       int          `yaml:"window_hours"`
	MaxItemsPerSource int          `yaml:"max_items_per_source"`
	Search            SearchSource `yaml:"search"`
	Social            SocialSource `yaml:"social"`
	Feeds             []FeedSource `yaml:"feeds"`
}

type SearchSource struct {
	Keywords []string `yaml:"keywords"`
}

type SocialSource struct {
	Subreddits []string `yaml:"subreddits"`
}

type FeedSource struct {
	Name     string   `yaml:"name"`
	URL      string   `yaml:"url"`
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// LoadSources reads the source list from a YAML file.
func LoadSources(path string) (*Sources, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src := &Sources{
		WindowHours:       24,
		MaxItemsPerSource: 30,
	}
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(src); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if src.WindowHours <= 0 {
		src.WindowHours = 24
	}
	if src.MaxItemsPerSource <= 0 {
		src.MaxItemsPerSource = 30
	}
	for i, feed := range src.Feeds {
		if feed.URL == "" {
			return nil, fmt.Errorf("feed %d in %s has no url", i, path)
		}
	}
	return src, nil
}
