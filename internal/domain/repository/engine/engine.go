package engine

import "context"

// Engine renders the document at inputPath into outDir.
type Engine interface {
	Convert(ctx context.Context, inputPath, outDir string) error
}
