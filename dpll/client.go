package dpll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
)

// ErrTransportUnavailable wraps a failure to dial generic netlink or
// resolve the dpll family, surfaced at the CLI boundary as
// TransportUnavailable (§7).
type ErrTransportUnavailable struct {
	Reason string
	Err    error
}

func (e *ErrTransportUnavailable) Error() string {
	return fmt.Sprintf("dpll: transport unavailable: %s: %v", e.Reason, e.Err)
}

func (e *ErrTransportUnavailable) Unwrap() error { return e.Err }

// ErrKernel wraps a netlink-level failure reported by the kernel in
// response to a request (wrong arguments, ambiguous ID_GET match, device
// busy, and so on), surfaced as KernelError (§7).
type ErrKernel struct {
	Op  string
	Err error
}

func (e *ErrKernel) Error() string {
	return fmt.Sprintf("dpll: %s: %v", e.Op, e.Err)
}

func (e *ErrKernel) Unwrap() error { return e.Err }

// Client is the Transport component (§4.11): it owns exactly one generic
// netlink socket (§5's "process holds exactly one transport socket at a
// time") dialed against the "dpll" family, and exposes the two shapes of
// traffic the rest of the engine needs — request/reply Execute, and the
// steady-state Monitor loop.
type Client struct {
	conn   *genetlink.Conn
	family genetlink.Family
	stats  *commandStats
}

// Dial opens the generic netlink socket and resolves the dpll family. help
// variants of every command (§4.8) must never call this — that pre-check
// lives in the Command Dispatcher, not here.
func Dial() (*Client, error) {
	conn, err := genetlink.Dial(nil)
	if err != nil {
		return nil, &ErrTransportUnavailable{Reason: "dial generic netlink", Err: err}
	}

	fam, err := conn.GetFamily(FamilyName)
	if err != nil {
		_ = conn.Close()
		return nil, &ErrTransportUnavailable{Reason: "resolve dpll family", Err: err}
	}
	if fam.Version < familyVersion {
		_ = conn.Close()
		return nil, &ErrTransportUnavailable{
			Reason: fmt.Sprintf("kernel dpll family version %d older than %d", fam.Version, familyVersion),
		}
	}

	return &Client{conn: conn, family: fam, stats: newCommandStats()}, nil
}

// Close releases the transport socket.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Execute sends one pre-built message body for the given command and
// returns the reply bodies in delivery order (§2's "transport sends,
// delivers 0..N reply messages"; §5's "delivery order ... must not be
// re-sorted"). dump selects netlink.Dump for multi-reply GETs; ack requests
// netlink.Acknowledge for write operations whose reply carries only a
// success code.
func (c *Client) Execute(cmd Command, body []byte, dump, ack bool) ([][]byte, error) {
	var flags netlink.HeaderFlags = netlink.Request
	if dump {
		flags |= netlink.Dump
	}
	if ack {
		flags |= netlink.Acknowledge
	}

	msg := genetlink.Message{
		Header: genetlink.Header{
			Command: uint8(cmd),
			Version: familyVersion,
		},
		Data: body,
	}

	start := time.Now()
	replies, err := c.conn.Execute(msg, c.family.ID, flags)
	c.stats.sample(cmd, time.Since(start))
	if err != nil {
		return nil, &ErrKernel{Op: fmt.Sprintf("command %d", cmd), Err: err}
	}

	out := make([][]byte, 0, len(replies))
	for _, r := range replies {
		slog.Debug("dpll: reply", "cmd", cmd, "latency", c.stats.stringFor(cmd), "attrs", spew.Sdump(r.Data))
		out = append(out, r.Data)
	}
	return out, nil
}

// Monitor subscribes to the "monitor" multicast group and drains it until
// ctx is cancelled (§4.10, §5). It waits on the socket with pollInterval as
// the recheck tick: on a read deadline, it re-checks ctx before looping
// again, treating a timed-out Receive as "nothing arrived, keep polling"
// rather than an error. handler is invoked once per delivered message,
// synchronously, before the next Receive — no aggregator state crosses the
// wait (§5).
func (c *Client) Monitor(ctx context.Context, pollInterval time.Duration, handler func(cmd Command, body []byte)) error {
	group, err := c.findGroup(MonitorGroup)
	if err != nil {
		return &ErrTransportUnavailable{Reason: "resolve monitor multicast group", Err: err}
	}
	if err := c.conn.JoinGroup(group); err != nil {
		return &ErrTransportUnavailable{Reason: "join monitor multicast group", Err: err}
	}
	defer c.conn.LeaveGroup(group)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := c.conn.SetReadDeadline(time.Now().Add(pollInterval)); err != nil {
			return &ErrKernel{Op: "set monitor read deadline", Err: err}
		}

		msgs, err := c.conn.Receive()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
				continue
			}
			return &ErrKernel{Op: "monitor receive", Err: err}
		}

		for _, m := range msgs {
			handler(Command(m.Header.Command), m.Data)
		}
	}
}

// isTimeout reports whether err is the kind of deadline-exceeded error a
// read deadline produces, regardless of which layer (net, syscall, or
// mdlayher's own wrapping) surfaces it.
func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	var t timeouter
	if errors.As(err, &t) {
		return t.Timeout()
	}
	return false
}

// findGroup resolves a multicast group name to its numeric id within the
// already-resolved family.
func (c *Client) findGroup(name string) (uint32, error) {
	for _, g := range c.family.Groups {
		if g.Name == name {
			return g.ID, nil
		}
	}
	return 0, fmt.Errorf("dpll: family %q has no multicast group %q", FamilyName, name)
}
