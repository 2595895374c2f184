package parser

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"slidis/interface/redis"
	"slidis/redis/protocol"
	"strconv"
)

type Payload struct {
	Data redis.Reply
	Err  error
}

// ParseStream reads RESP values from reader and feeds them through the
// returned channel until the reader fails.
func ParseStream(reader io.Reader) <-chan *Payload {
	ch := make(chan *Payload)
	go parse(reader, ch)
	return ch
}

func parse(rawReader io.Reader, ch chan<- *Payload) {
	reader := bufio.NewReader(rawReader)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			ch <- &Payload{Err: err}
			close(ch)
			return
		}
		l := len(line)
		if l <= 2 || line[l-2] != '\r' {
			continue
		}
		line = bytes.TrimSuffix(line, []byte{'\r', '\n'})
		switch line[0] {
		case '+': // status reply
			content := string(line[1:])
			ch <- &Payload{
				Data: protocol.MakeStatusReply(content),
			}
		case '-': // error reply
			ch <- &Payload{Data: protocol.MakeErrReply(string(line[1:]))}
		case ':':
			code, err := strconv.ParseInt(string(line[1:]), 10, 64)
			if err != nil {
				ch <- &Payload{Err: errors.New("illegal int reply " + string(line[1:]))}
				continue
			}
			ch <- &Payload{Data: protocol.MakeIntReply(code)}
		case '$': // bulk string / null reply
			err = parseBulkString(line, reader, ch)
			if err != nil {
				ch <- &Payload{Err: err}
				close(ch)
				return
			}
		case '*': // multi bulk reply
			err = parseArray(line, reader, ch)
			if err != nil {
				ch <- &Payload{Err: err}
				close(ch)
				return
			}
		default: // inline command
			args := bytes.Split(line, []byte{' '})
			ch <- &Payload{Data: protocol.MakeMultiBulkReply(args)}
		}
	}
}

func parseArray(line []byte, reader *bufio.Reader, ch chan<- *Payload) error {
	num, err := strconv.ParseInt(string(line[1:]), 10, 64)
	if err != nil || num < 0 {
		return errors.New("illegal array header " + string(line[1:]))
	}
	if num == 0 {
		ch <- &Payload{Data: protocol.MakeEmptyMultiBulkReply()}
		return nil
	}
	lines := make([][]byte, 0, num)
	for i := int64(0); i < num; i++ {
		line, err := reader.ReadBytes('\n')
		l := len(line)
		if err != nil {
			return err
		}
		if l < 4 || line[0] != '$' || line[l-2] != '\r' {
			return errors.New("illegal bulk string header " + string(line))
		}
		strLen, err := strconv.ParseInt(string(line[1:l-2]), 10, 64)
		if err != nil {
			return err
		}
		if strLen < -1 {
			return errors.New("illegal bulk string header " + string(line))
		} else if strLen < 0 {
			lines = append(lines, []byte{})
		} else {
			body := make([]byte, strLen+2)
			_, err = io.ReadFull(reader, body)
			if err != nil {
				return err
			}
			lines = append(lines, body[:len(body)-2])
		}
	}
	ch <- &Payload{Data: protocol.MakeMultiBulkReply(lines)}
	return nil
}

func parseBulkString(header []byte, reader *bufio.Reader, ch chan<- *Payload) error {
	num, err := strconv.ParseInt(string(header[1:]), 10, 64)
	if err != nil || num < -1 {
		return errors.New("illegal bulk string header " + string(header[1:]))
	}
	if num == -1 {
		ch <- &Payload{Data: protocol.MakeNullBulkReply()}
		return nil
	}
	body := make([]byte, num+2)
	_, err = io.ReadFull(reader, body)
	if err != nil {
		return err
	}
	ch <- &Payload{Data: protocol.MakeBulkReply(body[:len(body)-2])}
	return nil
}
