package nats

import (
	"time"

	"github.com/nats-io/nats.go"
)

type ClientConfig struct {
	URL  string
	Name string
}

type Client struct {
	conn *nats.Conn
}

func NewClient(cfg ClientConfig) (*Client, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Conn() *nats.Conn {
	return c.conn
}

func (c *Client) Close() {
	if c.conn != nil {
		_ = c.conn.Drain()
	}
}
