package workspace

// Workspace is a temporary directory exclusively owned by one conversion.
type Workspace interface {
	Dir() string
	WriteInput(name string, data []byte) (string, error)
	FindByExtension(ext string) ([]string, error)
	Destroy() error
}

type Manager interface {
	Create() (Workspace, error)
}
