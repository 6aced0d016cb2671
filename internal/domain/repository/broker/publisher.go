package broker

import "context"

// Publisher announces finished conversions to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event string) error
}
