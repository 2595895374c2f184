package connection

import (
	"net"
	"sync"
)

// Connection wraps one client socket together with its protocol state.
type Connection struct {
	conn       net.Conn
	mu         sync.Mutex
	password   string
	subs       map[string]struct{}
	selectedDB int
}

var connPool = sync.Pool{
	New: func() interface{} {
		return &Connection{}
	},
}

func NewConn(conn net.Conn) *Connection {
	c, ok := connPool.Get().(*Connection)
	if !ok {
		return &Connection{
			conn: conn,
		}
	}
	c.conn = conn
	return c
}

func (c *Connection) Close() error {
	c.password = ""
	c.subs = nil
	c.selectedDB = 0
	err := c.conn.Close()
	connPool.Put(c)
	return err
}

func (c *Connection) Write(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Write(b)
}

func (c *Connection) Name() string {
	if c.conn == nil {
		return ""
	}
	return c.conn.RemoteAddr().String()
}

func (c *Connection) GetPassword() string {
	return c.password
}

func (c *Connection) SetPassword(password string) {
	c.password = password
}

func (c *Connection) Subscribe(channel string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subs == nil {
		c.subs = make(map[string]struct{})
	}
	c.subs[channel] = struct{}{}
}

func (c *Connection) Unsubscribe(channel string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.subs) == 0 {
		return
	}
	delete(c.subs, channel)
}

func (c *Connection) SubsCount() int {
	return len(c.subs)
}

func (c *Connection) GetChannels() []string {
	if c.subs == nil {
		return nil
	}
	channels := make([]string, 0, len(c.subs))
	for channel := range c.subs {
		channels = append(channels, channel)
	}
	return channels
}

func (c *Connection) GetDBIndex() int {
	return c.selectedDB
}

func (c *Connection) SelectDB(index int) {
	c.selectedDB = index
}
