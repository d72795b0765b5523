package a2s

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/poundbot/gamewatch/types"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout bounds every send and every receive.
	DefaultTimeout = 2 * time.Second

	// packetSize is the largest single A2S datagram.
	packetSize = 1400
)

// Client queries Source servers. A Client runs one request at a time; every
// query opens its own socket and closes it before returning.
type Client struct {
	Timeout time.Duration

	mu sync.Mutex
}

// NewClient returns a Client with the given per-operation timeout. A
// non-positive timeout selects DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{Timeout: timeout}
}

// Query fetches INFO and then PLAYER from address over one socket.
func (c *Client) Query(ctx context.Context, address string) (Info, []Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.dial(ctx, address)
	if err != nil {
		return Info{}, nil, err
	}
	defer conn.Close()

	info, err := c.info(ctx, conn)
	if err != nil {
		return Info{}, nil, err
	}
	players, err := c.players(ctx, conn)
	if err != nil {
		return Info{}, nil, err
	}
	return info, players, nil
}

func (c *Client) info(ctx context.Context, conn net.Conn) (Info, error) {
	reply, err := c.exchange(ctx, conn, InfoRequest(nil))
	if err != nil {
		return Info{}, err
	}

	token, ok, err := DecodeChallenge(reply)
	if err != nil {
		return Info{}, err
	}
	if ok {
		log.WithField("endpoint", conn.RemoteAddr().String()).Trace("info challenge")
		if reply, err = c.exchange(ctx, conn, InfoRequest(token)); err != nil {
			return Info{}, err
		}
	}

	return DecodeInfo(reply)
}

func (c *Client) players(ctx context.Context, conn net.Conn) ([]Player, error) {
	reply, err := c.exchange(ctx, conn, PlayerRequest(nil))
	if err != nil {
		return nil, err
	}

	token, ok, err := DecodeChallenge(reply)
	if err != nil {
		return nil, err
	}
	if ok {
		if reply, err = c.exchange(ctx, conn, PlayerRequest(token)); err != nil {
			return nil, err
		}
	}

	return DecodePlayers(reply)
}

func (c *Client) dial(ctx context.Context, address string) (net.Conn, error) {
	var d net.Dialer
	dctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	conn, err := d.DialContext(dctx, "udp", address)
	if err != nil {
		return nil, classify("dial", err)
	}
	return conn, nil
}

// exchange sends one datagram and waits for one reply.
func (c *Client) exchange(ctx context.Context, conn net.Conn, req []byte) ([]byte, error) {
	if err := conn.SetWriteDeadline(c.deadline(ctx)); err != nil {
		return nil, classify("send", err)
	}
	if _, err := conn.Write(req); err != nil {
		return nil, classify("send", err)
	}

	if err := conn.SetReadDeadline(c.deadline(ctx)); err != nil {
		return nil, classify("receive", err)
	}
	buf := make([]byte, packetSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, classify("receive", err)
	}

	log.WithFields(logrus.Fields{
		"endpoint": conn.RemoteAddr().String(),
		"bytes":    n,
	}).Trace("reply")
	return buf[:n], nil
}

func (c *Client) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// deadline is the earlier of the context deadline and the client timeout.
func (c *Client) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(c.timeout())
	if cd, ok := ctx.Deadline(); ok && cd.Before(d) {
		return cd
	}
	return d
}

// classify maps a transport error onto the error taxonomy.
func classify(op string, err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("a2s %s: %w: %v", op, types.ErrTimeout, err)
	}
	return fmt.Errorf("a2s %s: %w: %v", op, types.ErrUnreachable, err)
}
