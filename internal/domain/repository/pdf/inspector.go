package pdf

import "io"

// Inspector checks that a produced file is a readable PDF.
type Inspector interface {
	PageCount(rs io.ReadSeeker) (int, error)
}
