package server

import (
	"context"
	"io"
	"net"
	database "slidis/database"
	dbface "slidis/interface/database"
	"slidis/redis/connection"
	"slidis/redis/parser"
	"slidis/redis/protocol"
	"slidis/utils/logs"
	"strings"
	"sync"
	"sync/atomic"
)

// Handler glues the RESP parser to the database engine, one goroutine
// per connection.
type Handler struct {
	activeConn sync.Map // *connection.Connection -> placeholder
	db         dbface.DB
	closing    atomic.Bool // refusing new client and new request
}

func MakeHandler() *Handler {
	return &Handler{
		db: database.NewStandaloneServer(),
	}
}

func (h *Handler) closeClient(client *connection.Connection) {
	_ = client.Close()
	h.db.AfterClientClose(client)
	h.activeConn.Delete(client)
}

func (h *Handler) Handle(ctx context.Context, conn net.Conn) {
	if h.closing.Load() {
		_ = conn.Close()
		return
	}
	client := connection.NewConn(conn)
	h.activeConn.Store(client, struct{}{})

	ch := parser.ParseStream(conn)
	for payload := range ch {
		if payload.Err != nil {
			if payload.Err == io.EOF ||
				payload.Err == io.ErrUnexpectedEOF ||
				strings.Contains(payload.Err.Error(), "use of closed network connection") {
				h.closeClient(client)
				return
			}
			// protocol error
			errReply := protocol.MakeErrReply(payload.Err.Error())
			if _, err := client.Write(errReply.ToBytes()); err != nil {
				h.closeClient(client)
				return
			}
			continue
		}
		if payload.Data == nil {
			continue
		}
		r, ok := payload.Data.(*protocol.MultiBulkReply)
		if !ok {
			logs.LOG.Warn.Println("require multi bulk protocol")
			continue
		}
		result := h.db.Exec(client, r.Args)
		if result != nil {
			_, _ = client.Write(result.ToBytes())
		} else {
			_, _ = client.Write(protocol.UnknownErrReplyBytes)
		}
	}
}

func (h *Handler) Close() error {
	logs.LOG.Info.Println("handler shutting down...")
	h.closing.Store(true)
	h.activeConn.Range(func(key any, val any) bool {
		client := key.(*connection.Connection)
		_ = client.Close()
		return true
	})
	h.db.Close()
	return nil
}
