package ocr

import "context"

type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}
