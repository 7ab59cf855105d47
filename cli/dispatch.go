package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/orosp/dpll/dpll"
	"github.com/orosp/dpll/output"
)

const topUsage = "usage: dpll {device|pin|monitor|help}"

// DialFunc opens the Transport. Dispatch calls it only for commands that
// need the kernel (§4.8's "decides whether the command needs a live
// transport: help variants do not").
type DialFunc func() (*dpll.Client, error)

func isHelp(c *Cursor) bool {
	tok, ok := c.Peek()
	return ok && tok == "help"
}

func printUsage(stderr io.Writer, usage string) {
	fmt.Fprintln(stderr, usage)
}

// Dispatch is the Command Dispatcher's entry point (§4.8): a three-level
// object → verb → argument-loop table. stderr receives usage/help text;
// sink receives rendered replies.
func Dispatch(ctx context.Context, c *Cursor, sink output.Sink, dial DialFunc, pollInterval time.Duration, stderr io.Writer) error {
	if c.Empty() {
		printUsage(stderr, topUsage)
		return nil
	}
	if isHelp(c) {
		c.Advance()
		printUsage(stderr, topUsage)
		return nil
	}

	obj, _ := c.Take()
	switch obj {
	case "device":
		return dispatchDevice(c, sink, dial, stderr)
	case "pin":
		return dispatchPin(c, sink, dial, stderr)
	case "monitor":
		return dispatchMonitor(ctx, c, sink, dial, pollInterval, stderr)
	default:
		return &UsageError{Usage: topUsage}
	}
}

func dispatchDevice(c *Cursor, sink output.Sink, dial DialFunc, stderr io.Writer) error {
	if c.Empty() || isHelp(c) {
		printUsage(stderr, deviceHelpUsage)
		return nil
	}

	verb, _ := c.Take()
	switch verb {
	case "help":
		printUsage(stderr, deviceHelpUsage)
		return nil

	case "show":
		if isHelp(c) {
			printUsage(stderr, deviceShowUsage)
			return nil
		}
		body, dump, err := parseDeviceShow(c)
		if err != nil {
			return err
		}
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		replies, err := client.Execute(dpll.CmdDeviceGet, body, dump, false)
		if err != nil {
			return err
		}
		if dump {
			output.RenderDevices(sink, decodeDevices(replies))
		} else {
			d, err := decodeDeviceSingle(replies)
			if err != nil {
				return err
			}
			output.RenderDevice(sink, d)
		}
		return sink.Finish()

	case "set":
		if isHelp(c) {
			printUsage(stderr, deviceSetUsage)
			return nil
		}
		body, err := parseDeviceSet(c)
		if err != nil {
			return err
		}
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		_, err = client.Execute(dpll.CmdDeviceSet, body, false, true)
		return err

	case "id-get":
		if isHelp(c) {
			printUsage(stderr, deviceIDGetUsage)
			return nil
		}
		body, err := parseDeviceIDGet(c)
		if err != nil {
			return err
		}
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		replies, err := client.Execute(dpll.CmdDeviceIDGet, body, false, false)
		if err != nil {
			return err
		}
		d, err := decodeDeviceSingle(replies)
		if err != nil {
			return err
		}
		output.RenderDevice(sink, d)
		return sink.Finish()

	default:
		return &UsageError{Usage: deviceHelpUsage}
	}
}

func dispatchPin(c *Cursor, sink output.Sink, dial DialFunc, stderr io.Writer) error {
	if c.Empty() || isHelp(c) {
		printUsage(stderr, pinHelpUsage)
		return nil
	}

	verb, _ := c.Take()
	switch verb {
	case "help":
		printUsage(stderr, pinHelpUsage)
		return nil

	case "show":
		if isHelp(c) {
			printUsage(stderr, pinShowUsage)
			return nil
		}
		body, dump, err := parsePinShow(c)
		if err != nil {
			return err
		}
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		replies, err := client.Execute(dpll.CmdPinGet, body, dump, false)
		if err != nil {
			return err
		}
		if dump {
			output.RenderPins(sink, decodePins(replies))
		} else {
			p, err := decodePinSingle(replies)
			if err != nil {
				return err
			}
			output.RenderPin(sink, p)
		}
		return sink.Finish()

	case "set":
		if isHelp(c) {
			printUsage(stderr, pinSetUsage)
			return nil
		}
		body, err := parsePinSet(c)
		if err != nil {
			return err
		}
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		_, err = client.Execute(dpll.CmdPinSet, body, false, true)
		return err

	case "id-get":
		if isHelp(c) {
			printUsage(stderr, pinIDGetUsage)
			return nil
		}
		body, err := parsePinIDGet(c)
		if err != nil {
			return err
		}
		client, err := dial()
		if err != nil {
			return err
		}
		defer client.Close()

		replies, err := client.Execute(dpll.CmdPinIDGet, body, false, false)
		if err != nil {
			return err
		}
		p, err := decodePinSingle(replies)
		if err != nil {
			return err
		}
		output.RenderPin(sink, p)
		return sink.Finish()

	default:
		return &UsageError{Usage: pinHelpUsage}
	}
}

func dispatchMonitor(ctx context.Context, c *Cursor, sink output.Sink, dial DialFunc, pollInterval time.Duration, stderr io.Writer) error {
	if isHelp(c) {
		printUsage(stderr, monitorUsage)
		return nil
	}
	if !c.Empty() {
		return &UsageError{Usage: monitorUsage}
	}

	client, err := dial()
	if err != nil {
		return err
	}
	defer client.Close()

	return runMonitor(ctx, client, sink, pollInterval)
}

// decodeDevices decodes every reply of a dump, skipping a DecodeError per
// element (§7: soft inside a dump) without aborting the rest.
func decodeDevices(replies [][]byte) []*dpll.Device {
	out := make([]*dpll.Device, 0, len(replies))
	for _, body := range replies {
		d, err := dpll.DecodeDevice(body)
		if err != nil {
			var derr *dpll.DecodeError
			if errors.As(err, &derr) {
				slog.Warn("dpll: skipping undecodable device", "err", derr)
				continue
			}
			slog.Warn("dpll: skipping undecodable device", "err", err)
			continue
		}
		out = append(out, d)
	}
	return out
}

// decodeDeviceSingle decodes the one reply a single-element GET/ID_GET
// expects. A decode failure here is hard (§7).
func decodeDeviceSingle(replies [][]byte) (*dpll.Device, error) {
	if len(replies) == 0 {
		return nil, &dpll.ErrKernel{Op: "device", Err: errors.New("no reply")}
	}
	return dpll.DecodeDevice(replies[0])
}

func decodePins(replies [][]byte) []*dpll.Pin {
	out := make([]*dpll.Pin, 0, len(replies))
	for _, body := range replies {
		p, err := dpll.DecodePin(body)
		if err != nil {
			slog.Warn("dpll: skipping undecodable pin", "err", err)
			continue
		}
		out = append(out, p)
	}
	return out
}

func decodePinSingle(replies [][]byte) (*dpll.Pin, error) {
	if len(replies) == 0 {
		return nil, &dpll.ErrKernel{Op: "pin", Err: errors.New("no reply")}
	}
	return dpll.DecodePin(replies[0])
}
