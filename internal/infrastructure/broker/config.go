package broker

type Config struct {
	Enabled    bool   `yaml:"enabled"`
	URI        string `yaml:"-"`
	StreamName string `yaml:"stream_name"`
	// MaxLen caps the stream approximately; 0 keeps every event.
	MaxLen int64 `yaml:"max_len"`
}

type PublisherConfig struct {
	Timeout int `yaml:"timeout_in_ms"`
}
