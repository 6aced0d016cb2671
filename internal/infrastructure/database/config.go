package database

type Config struct {
	Enabled           bool   `yaml:"enabled"`
	URI               string `yaml:"-"`
	DBName            string `yaml:"db_name"`
	ConnectionTimeout int64  `yaml:"connection_timeout_in_ms"`
	QueryTimeout      int64  `yaml:"query_timeout_in_ms"`
}
