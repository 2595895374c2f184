package pubsub

import (
	"bytes"
	"strings"
	"testing"
)

// recorderConn captures everything written to it.
type recorderConn struct {
	buf        bytes.Buffer
	subs       map[string]struct{}
	password   string
	selectedDB int
}

func newRecorderConn() *recorderConn {
	return &recorderConn{subs: make(map[string]struct{})}
}

func (c *recorderConn) Write(b []byte) (int, error) {
	return c.buf.Write(b)
}
func (c *recorderConn) Close() error        { return nil }
func (c *recorderConn) Name() string        { return "recorder" }
func (c *recorderConn) GetPassword() string { return c.password }
func (c *recorderConn) SetPassword(p string) {
	c.password = p
}
func (c *recorderConn) Subscribe(channel string) {
	c.subs[channel] = struct{}{}
}
func (c *recorderConn) Unsubscribe(channel string) {
	delete(c.subs, channel)
}
func (c *recorderConn) SubsCount() int { return len(c.subs) }
func (c *recorderConn) GetChannels() []string {
	channels := make([]string, 0, len(c.subs))
	for channel := range c.subs {
		channels = append(channels, channel)
	}
	return channels
}
func (c *recorderConn) GetDBIndex() int { return c.selectedDB }
func (c *recorderConn) SelectDB(index int) {
	c.selectedDB = index
}

func TestSubscribePublish(t *testing.T) {
	hub := MakeHub()
	sub := newRecorderConn()
	Subscribe(hub, sub, [][]byte{[]byte("news")})
	if sub.SubsCount() != 1 {
		t.Fatalf("expected 1 subscription, got %d", sub.SubsCount())
	}

	pub := newRecorderConn()
	reply := Publish(hub, pub, [][]byte{[]byte("news"), []byte("hello")})
	if string(reply.ToBytes()) != ":1\r\n" {
		t.Fatalf("expected 1 receiver, got %s", reply.ToBytes())
	}
	got := sub.buf.String()
	if !strings.Contains(got, "message") || !strings.Contains(got, "news") || !strings.Contains(got, "hello") {
		t.Fatalf("message not delivered: %q", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := MakeHub()
	sub := newRecorderConn()
	Subscribe(hub, sub, [][]byte{[]byte("news")})
	UnSubscribe(hub, sub, [][]byte{[]byte("news")})
	sub.buf.Reset()

	pub := newRecorderConn()
	reply := Publish(hub, pub, [][]byte{[]byte("news"), []byte("hello")})
	if string(reply.ToBytes()) != ":0\r\n" {
		t.Fatalf("expected 0 receivers, got %s", reply.ToBytes())
	}
	if sub.buf.Len() != 0 {
		t.Fatalf("unsubscribed client still received: %q", sub.buf.String())
	}
}

func TestKeyspaceNotification(t *testing.T) {
	hub := MakeHub()
	keyWatcher := newRecorderConn()
	eventWatcher := newRecorderConn()
	Subscribe(hub, keyWatcher, [][]byte{[]byte("__keyspace@0__:k")})
	Subscribe(hub, eventWatcher, [][]byte{[]byte("__keyevent@0__:sladd")})

	NotifyKeyspaceEvent(hub, 0, "sladd", "k")

	if !strings.Contains(keyWatcher.buf.String(), "sladd") {
		t.Fatalf("keyspace channel missed the event: %q", keyWatcher.buf.String())
	}
	if !strings.Contains(eventWatcher.buf.String(), "$1\r\nk\r\n") {
		t.Fatalf("keyevent channel missed the key: %q", eventWatcher.buf.String())
	}
}
