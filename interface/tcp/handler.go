package tcp

import (
	"context"
	"net"
)

// Handler serves client connections accepted by the tcp server.
type Handler interface {
	Handle(ctx context.Context, conn net.Conn)
	Close() error
}
