package workspace

type Config struct {
	// Root is the parent directory for workspaces; empty means os.TempDir().
	Root string `yaml:"root"`
}
