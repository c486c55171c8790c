package model

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Messages queued beyond this many drop the client.
const clientQueueSize = 32

var ErrClientClosed = errors.New("client connection closed")

type messageWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// Client is the single writer for one WebSocket connection. Everything
// sent to the connection goes through its queue, so writes never overlap
// and arrive in the order they were queued.
type Client struct {
	conn messageWriter
	send chan []byte
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

func newClient(conn messageWriter) *Client {
	c := &Client{
		conn: conn,
		send: make(chan []byte, clientQueueSize),
		done: make(chan struct{}),
	}
	go c.writeLoop()
	return c
}

func (c *Client) writeLoop() {
	defer close(c.done)
	failed := false
	for msg := range c.send {
		if failed {
			continue
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("websocket write: %v", err)
			failed = true
		}
	}
}

// enqueue reports false when the client is closed or too far behind.
func (c *Client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Send encodes v as JSON and queues it.
func (c *Client) Send(v any) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if !c.enqueue(msg) {
		return ErrClientClosed
	}
	return nil
}

// Close stops accepting messages and waits for the queued ones to be
// written.
func (c *Client) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
	<-c.done
}
