package dpll

import "fmt"

// Generic netlink family identity (§6.2).
const (
	FamilyName    = "dpll"
	familyVersion = 1

	// MonitorGroup is the multicast group name the Notification Loop joins.
	MonitorGroup = "monitor"
)

// Command identifies a dpll generic-netlink operation (§6.2). Numbered the
// way the pack's nbdnl reference numbers its own cmd* constants: small,
// locally significant, and only required to agree between this client's own
// encoder and decoder.
type Command uint8

const (
	CmdDeviceIDGet Command = iota + 1
	CmdDeviceGet
	CmdDeviceSet
	CmdDeviceCreateNtf
	CmdDeviceDeleteNtf
	CmdDeviceChangeNtf
	CmdPinIDGet
	CmdPinGet
	CmdPinSet
	CmdPinCreateNtf
	CmdPinDeleteNtf
	CmdPinChangeNtf
)

// eventKindForCommand maps a notification command id to the EventKind the
// Notification Loop tags its rendered output with (§4.10). Unknown commands
// are logged and skipped without aborting the loop, per spec.
func eventKindForCommand(cmd Command) EventKind {
	switch cmd {
	case CmdDeviceCreateNtf:
		return EventDeviceCreate
	case CmdDeviceChangeNtf:
		return EventDeviceChange
	case CmdDeviceDeleteNtf:
		return EventDeviceDelete
	case CmdPinCreateNtf:
		return EventPinCreate
	case CmdPinChangeNtf:
		return EventPinChange
	case CmdPinDeleteNtf:
		return EventPinDelete
	default:
		return EventUnknown
	}
}

func isDeviceEvent(k EventKind) bool {
	switch k {
	case EventDeviceCreate, EventDeviceChange, EventDeviceDelete:
		return true
	default:
		return false
	}
}

func isPinEvent(k EventKind) bool {
	switch k {
	case EventPinCreate, EventPinChange, EventPinDelete:
		return true
	default:
		return false
	}
}

// DecodeEvent runs one notification message through the same
// Decoder+Aggregator pipeline as a dump reply (§4.10) and wraps the result
// in the Event envelope the Notification Loop renders. An unknown command
// is reported so the caller can log and skip it without aborting the loop.
func DecodeEvent(cmd Command, body []byte) (*Event, error) {
	kind := eventKindForCommand(cmd)

	switch {
	case isDeviceEvent(kind):
		d, err := DecodeDevice(body)
		if err != nil {
			return nil, err
		}
		return &Event{Kind: kind, Device: d}, nil
	case isPinEvent(kind):
		p, err := DecodePin(body)
		if err != nil {
			return nil, err
		}
		return &Event{Kind: kind, Pin: p}, nil
	default:
		return nil, fmt.Errorf("dpll: unknown notification command %d", cmd)
	}
}
