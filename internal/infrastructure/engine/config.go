package engine

type Config struct {
	Binary    string   `yaml:"binary"`
	Timeout   int64    `yaml:"timeout_in_ms"`
	WaitDelay int64    `yaml:"wait_delay_in_ms"`
	ExtraArgs []string `yaml:"extra_args"`
}
