package connection

// FakeConn feeds replayed command lines into the engine, replies are
// discarded.
type FakeConn struct {
	password   string
	subs       map[string]struct{}
	selectedDB int
}

func NewFakeConn() *FakeConn {
	return &FakeConn{}
}

func (c *FakeConn) Write(b []byte) (int, error) {
	return len(b), nil
}

func (c *FakeConn) Close() error {
	return nil
}

func (c *FakeConn) Name() string {
	return "fake-conn"
}

func (c *FakeConn) GetPassword() string {
	return c.password
}

func (c *FakeConn) SetPassword(password string) {
	c.password = password
}

func (c *FakeConn) Subscribe(channel string) {
	if c.subs == nil {
		c.subs = make(map[string]struct{})
	}
	c.subs[channel] = struct{}{}
}

func (c *FakeConn) Unsubscribe(channel string) {
	delete(c.subs, channel)
}

func (c *FakeConn) SubsCount() int {
	return len(c.subs)
}

func (c *FakeConn) GetChannels() []string {
	channels := make([]string, 0, len(c.subs))
	for channel := range c.subs {
		channels = append(channels, channel)
	}
	return channels
}

func (c *FakeConn) GetDBIndex() int {
	return c.selectedDB
}

func (c *FakeConn) SelectDB(index int) {
	c.selectedDB = index
}
