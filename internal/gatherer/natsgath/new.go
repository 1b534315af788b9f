// Package natsgath streams evaluation progress as JSON messages published
// to a NATS subject, usually the requester's reply inbox.
package natsgath

import (
	"log/slog"

	"github.com/nats-io/nats.go"
)

// Publisher is the subset of *nats.Conn the gatherer needs.
type Publisher interface {
	Publish(subj string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// New creates a gatherer that streams messages about evalUuid to inbox.
func New(nc Publisher, evalUuid string, inbox string, logger *slog.Logger) *natsGatherer {
	if logger == nil {
		logger = slog.Default()
	}
	return &natsGatherer{
		nc:       nc,
		inbox:    inbox,
		evalUuid: evalUuid,
		logger:   logger.With("component", "natsgath", "eval_id", evalUuid),
	}
}
