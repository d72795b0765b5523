package mcping

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/poundbot/gamewatch/types"
	"github.com/poundbot/gamewatch/wire"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout bounds the dial and, separately, the exchange.
	DefaultTimeout = 5 * time.Second

	// maxPacketLen caps the declared response length.
	maxPacketLen = 1 << 21
)

// Client pings Minecraft servers. Every call opens and closes its own
// connection.
type Client struct {
	Timeout time.Duration
}

// NewClient returns a Client. A non-positive timeout selects DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{Timeout: timeout}
}

// Status performs the handshake and status request against host:port.
func (c *Client) Status(ctx context.Context, host string, port uint16) (Status, error) {
	address := net.JoinHostPort(host, strconv.Itoa(int(port)))
	clog := log.WithField("endpoint", address)

	d := net.Dialer{Timeout: c.timeout()}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return Status{}, classify("dial", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(c.deadline(ctx)); err != nil {
		return Status{}, classify("deadline", err)
	}

	req := append(EncodeHandshake(host, port), EncodeStatusRequest()...)
	if _, err := conn.Write(req); err != nil {
		return Status{}, classify("send", err)
	}

	packet, err := readPacket(bufio.NewReader(conn))
	if err != nil {
		return Status{}, err
	}
	clog.WithFields(logrus.Fields{"bytes": len(packet)}).Trace("status reply")

	return DecodeStatus(packet)
}

// readPacket reads one length-prefixed packet and returns it with its
// prefix. A peer closing early yields the bytes received so far, which
// DecodeStatus then rejects.
func readPacket(br *bufio.Reader) ([]byte, error) {
	length, err := wire.ReadVarInt(br)
	switch {
	case errors.Is(err, wire.ErrVarIntTooLong):
		return nil, err
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, fmt.Errorf("%w: connection closed before response", types.ErrDecode)
	case err != nil:
		return nil, classify("receive", err)
	}
	if length < 0 || length > maxPacketLen {
		return nil, fmt.Errorf("%w: packet length %d out of range", types.ErrDecode, length)
	}

	packet := wire.AppendVarInt(make([]byte, 0, wire.MaxVarIntLen+int(length)), length)
	body := make([]byte, length)
	n, err := io.ReadFull(br, body)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return append(packet, body[:n]...), nil
	case err != nil:
		return nil, classify("receive", err)
	}
	return append(packet, body...), nil
}

func (c *Client) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c *Client) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(c.timeout())
	if cd, ok := ctx.Deadline(); ok && cd.Before(d) {
		return cd
	}
	return d
}

func classify(op string, err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("mcping %s: %w: %v", op, types.ErrTimeout, err)
	}
	return fmt.Errorf("mcping %s: %w: %v", op, types.ErrUnreachable, err)
}
