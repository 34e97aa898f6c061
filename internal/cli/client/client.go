// Package client provides the wire client used by keyline-cli.
package client

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"time"
)

// DefaultTimeout bounds a single request/reply exchange.
const DefaultTimeout = 5 * time.Second

// Client is a connection to a keyline server. It is not safe for
// concurrent use; the CLI issues one request at a time.
type Client struct {
	addr    string
	timeout time.Duration
	conn    net.Conn
	reader  *bufio.Reader
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-exchange deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// Dial connects to the server at addr.
func Dial(addr string, opts ...Option) (*Client, error) {
	c := &Client{
		addr:    addr,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	conn, err := net.DialTimeout("tcp", addr, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return c, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Do sends one command and returns its reply.
func (c *Client) Do(args ...string) (Reply, error) {
	if len(args) == 0 {
		return Reply{}, fmt.Errorf("empty command")
	}

	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return Reply{}, err
	}

	if _, err := c.conn.Write(encodeRequest(args)); err != nil {
		return Reply{}, fmt.Errorf("write request: %w", err)
	}

	return readReply(c.reader)
}

// Ping checks server liveness.
func (c *Client) Ping() (string, error) {
	reply, err := c.Do("PING")
	if err != nil {
		return "", err
	}
	return reply.Text()
}

// Echo asks the server to echo msg.
func (c *Client) Echo(msg string) (string, error) {
	reply, err := c.Do("ECHO", msg)
	if err != nil {
		return "", err
	}
	return reply.Text()
}

// Get reads a key. found is false when the key is absent.
func (c *Client) Get(key string) (value string, found bool, err error) {
	reply, err := c.Do("GET", key)
	if err != nil {
		return "", false, err
	}
	if reply.Err != nil {
		return "", false, reply.Err
	}
	if reply.Null {
		return "", false, nil
	}
	return reply.Str, true, nil
}

// Set writes a key.
func (c *Client) Set(key, value string) error {
	reply, err := c.Do("SET", key, value)
	if err != nil {
		return err
	}
	_, err = reply.Text()
	return err
}

// SetPX writes a key with a time to live.
func (c *Client) SetPX(key, value string, ttl time.Duration) error {
	ms := strconv.FormatInt(ttl.Milliseconds(), 10)
	reply, err := c.Do("SET", key, value, "PX", ms)
	if err != nil {
		return err
	}
	_, err = reply.Text()
	return err
}

// Del removes keys and returns how many existed.
func (c *Client) Del(keys ...string) (int64, error) {
	reply, err := c.Do(append([]string{"DEL"}, keys...)...)
	if err != nil {
		return 0, err
	}
	return reply.Integer()
}

// Exists counts how many of the given keys are present.
func (c *Client) Exists(keys ...string) (int64, error) {
	reply, err := c.Do(append([]string{"EXISTS"}, keys...)...)
	if err != nil {
		return 0, err
	}
	return reply.Integer()
}

// TTL reports the remaining time to live of a key in whole seconds,
// following the usual conventions (-2 absent, -1 no expiry).
func (c *Client) TTL(key string) (int64, error) {
	reply, err := c.Do("TTL", key)
	if err != nil {
		return 0, err
	}
	return reply.Integer()
}

// Quit asks the server to close the session.
func (c *Client) Quit() error {
	reply, err := c.Do("QUIT")
	if err != nil {
		return err
	}
	_, err = reply.Text()
	return err
}

// encodeRequest frames args as *<n>\r\n followed by $<len>\r\n<arg>\r\n
// per argument.
func encodeRequest(args []string) []byte {
	var b []byte
	b = append(b, '*')
	b = strconv.AppendInt(b, int64(len(args)), 10)
	b = append(b, '\r', '\n')
	for _, arg := range args {
		b = append(b, '$')
		b = strconv.AppendInt(b, int64(len(arg)), 10)
		b = append(b, '\r', '\n')
		b = append(b, arg...)
		b = append(b, '\r', '\n')
	}
	return b
}
