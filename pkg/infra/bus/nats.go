// Package bus provides the notification event publishers.
package bus

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nats-io/nats.go"
	"github.com/stigbase/saver/pkg/domain/types"
)

// NATSPublisher publishes notification events over a core NATS connection.
// Delivery is at-most-once: no acknowledgment, no retry.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATS connects to the NATS endpoint. The connection reconnects forever
// so a bus outage does not take the service down with it.
func NewNATS(url, name string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to NATS",
			goerr.V("url", url),
		)
	}

	return &NATSPublisher{conn: conn}, nil
}

func (x *NATSPublisher) Publish(subject types.Subject, data []byte) error {
	if err := x.conn.Publish(string(subject), data); err != nil {
		return goerr.Wrap(err, "failed to publish event",
			goerr.V("subject", subject),
		)
	}
	if err := x.conn.Flush(); err != nil {
		return goerr.Wrap(err, "failed to flush publish",
			goerr.V("subject", subject),
		)
	}
	return nil
}

func (x *NATSPublisher) Close() {
	if err := x.conn.Drain(); err != nil {
		x.conn.Close()
	}
}
