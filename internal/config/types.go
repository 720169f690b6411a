package config

// Config is the top-level inkpress configuration, corresponding to .inkpress.yml.
type Config struct {
	Title          string       `yaml:"title" koanf:"title"`
	Root           string       `yaml:"root" koanf:"root"`
	OutputDir      string       `yaml:"output_dir" koanf:"output_dir"`
	PostsDir       string       `yaml:"posts_dir" koanf:"posts_dir"`
	ExperimentsDir string       `yaml:"experiments_dir" koanf:"experiments_dir"`
	LayoutsDir     string       `yaml:"layouts_dir" koanf:"layouts_dir"`
	AssetsDir      string       `yaml:"assets_dir" koanf:"assets_dir"`
	Drafts         bool         `yaml:"drafts" koanf:"drafts"`
	RelatedPosts   int          `yaml:"related_posts" koanf:"related_posts"`
	Exclude        []string     `yaml:"exclude" koanf:"exclude"`
	Lyrics         LyricsConfig `yaml:"lyrics" koanf:"lyrics"`
	Nav            NavConfig    `yaml:"nav" koanf:"nav"`
	Server         ServerConfig `yaml:"server" koanf:"server"`
	Watch          WatchConfig  `yaml:"watch" koanf:"watch"`
}

// LyricsConfig holds settings for lyric conversion.
type LyricsConfig struct {
	ContainerID string `yaml:"container_id" koanf:"container_id"`
}

// NavConfig holds settings for the navigation toggle.
type NavConfig struct {
	HideDelayMS int    `yaml:"hide_delay_ms" koanf:"hide_delay_ms"`
	OpenLabel   string `yaml:"open_label" koanf:"open_label"`
	CloseLabel  string `yaml:"close_label" koanf:"close_label"`
}

// ServerConfig holds settings for `inkpress serve`.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

// WatchConfig holds settings for `inkpress build --watch`.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" koanf:"debounce_ms"`
}
