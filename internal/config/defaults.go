package config

// DefaultExcludes are asset patterns never copied into the site.
var DefaultExcludes = []string{
	"**/.DS_Store",
	"**/*.swp",
	"**/*~",
	"**/.git/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:          "Notebook",
		Root:           ".",
		OutputDir:      "docs",
		PostsDir:       "posts",
		ExperimentsDir: "experiments",
		LayoutsDir:     "layouts",
		AssetsDir:      "assets",
		Drafts:         false,
		RelatedPosts:   6,
		Exclude:        append([]string(nil), DefaultExcludes...),
		Lyrics: LyricsConfig{
			ContainerID: "lyrics",
		},
		Nav: NavConfig{
			HideDelayMS: 240,
			OpenLabel:   "More",
			CloseLabel:  "Close",
		},
		Server: ServerConfig{
			Port:     8080,
			AllowAll: false,
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
	}
}
