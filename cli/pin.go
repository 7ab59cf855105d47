package cli

import (
	"github.com/orosp/dpll/dpll"
)

const pinShowUsage = "usage: dpll pin show [id ID] [device ID]"
const pinSetUsage = "usage: dpll pin set id ID [frequency U64] [direction {input|output}] [prio U32] [state {connected|disconnected|selectable}] [phase-adjust S32] [esync-frequency U64] [parent-device ID [direction ...] [prio ...] [state ...]]... [parent-pin ID [state ...]]... [reference-sync ID [state ...]]..."
const pinIDGetUsage = "usage: dpll pin id-get [module-name STR] [clock-id U64] [board-label STR] [panel-label STR] [package-label STR] [type {mux|ext|synce-eth-port|int-oscillator|gnss}]"
const pinHelpUsage = "usage: dpll pin {show|set|id-get|help}"

// parsePinShow builds the PIN_GET request from "pin show [id ID] [device
// ID]". Only id selects the single form (§4.9); device alone still filters
// a dump since more than one pin can share a parent device.
func parsePinShow(c *Cursor) (body []byte, dump bool, err error) {
	enc := dpll.NewEncoder(dpll.PinSchema)
	dump = true

	for !c.Empty() {
		tok, _ := c.Peek()
		switch tok {
		case "id":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, false, &MissingArgument{Keyword: "id"}
			}
			n, perr := parseUint(v, 32)
			if perr != nil {
				return nil, false, &InvalidArgument{Keyword: "id", Value: v, Reason: perr.Error()}
			}
			enc.PutU32("id", uint32(n))
			dump = false
		case "device":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, false, &MissingArgument{Keyword: "device"}
			}
			n, perr := parseUint(v, 32)
			if perr != nil {
				return nil, false, &InvalidArgument{Keyword: "device", Value: v, Reason: perr.Error()}
			}
			enc.PutU32("device", uint32(n))
		default:
			return nil, false, &UsageError{Usage: pinShowUsage}
		}
	}

	body, eerr := enc.Encode()
	if eerr != nil {
		return nil, false, &AllocationFailure{Reason: eerr.Error()}
	}
	return body, dump, nil
}

// parsePinSet builds the PIN_SET request from the full argument grammar of
// §6.1/§4.9, including the three nested-block keywords. It implements the
// Top/InNest/ExpectValue/ExpectSubValue state machine of §4.9 directly: the
// outer switch is Top, and each nested-block case runs its own sub-loop that
// only recognises that block's sub-keywords, falling through to Top (via
// "break nestLoop", never consuming the unrecognised token) the instant it
// sees one that isn't.
func parsePinSet(c *Cursor) ([]byte, error) {
	enc := dpll.NewEncoder(dpll.PinSchema)
	gotID := false

	for !c.Empty() {
		tok, _ := c.Peek()
		switch tok {
		case "id":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "id"}
			}
			n, perr := parseUint(v, 32)
			if perr != nil {
				return nil, &InvalidArgument{Keyword: "id", Value: v, Reason: perr.Error()}
			}
			enc.PutU32("id", uint32(n))
			gotID = true

		case "frequency":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "frequency"}
			}
			n, perr := parseUint(v, 64)
			if perr != nil {
				return nil, &InvalidArgument{Keyword: "frequency", Value: v, Reason: perr.Error()}
			}
			enc.PutU64("frequency", n)

		case "direction":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "direction"}
			}
			code, eerr := dpll.PinDirectionEnum.Encode(v)
			if eerr != nil {
				return nil, &InvalidArgument{Keyword: "direction", Value: v, Reason: eerr.Error()}
			}
			enc.PutU32("direction", code)

		case "prio":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "prio"}
			}
			n, perr := parseUint(v, 32)
			if perr != nil {
				return nil, &InvalidArgument{Keyword: "prio", Value: v, Reason: perr.Error()}
			}
			enc.PutU32("prio", uint32(n))

		case "state":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "state"}
			}
			code, eerr := dpll.PinStateEnum.Encode(v)
			if eerr != nil {
				return nil, &InvalidArgument{Keyword: "state", Value: v, Reason: eerr.Error()}
			}
			enc.PutU32("state", code)

		case "phase-adjust":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "phase-adjust"}
			}
			n, perr := parseInt(v, 32)
			if perr != nil {
				return nil, &InvalidArgument{Keyword: "phase-adjust", Value: v, Reason: perr.Error()}
			}
			enc.PutS32("phase-adjust", int32(n))

		case "esync-frequency":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "esync-frequency"}
			}
			n, perr := parseUint(v, 64)
			if perr != nil {
				return nil, &InvalidArgument{Keyword: "esync-frequency", Value: v, Reason: perr.Error()}
			}
			enc.PutU64("esync-frequency", n)

		case "parent-device":
			if err := parseParentDeviceBlock(c, enc); err != nil {
				return nil, err
			}

		case "parent-pin":
			if err := parseParentPinBlock(c, enc); err != nil {
				return nil, err
			}

		case "reference-sync":
			if err := parseReferenceSyncBlock(c, enc); err != nil {
				return nil, err
			}

		default:
			return nil, &UsageError{Usage: pinSetUsage}
		}
	}

	if !gotID {
		return nil, &MissingArgument{Keyword: "id"}
	}

	body, err := enc.Encode()
	if err != nil {
		return nil, &AllocationFailure{Reason: err.Error()}
	}
	return body, nil
}

// parseParentDeviceBlock consumes "parent-device ID [direction ...] [prio
// ...] [state ...]" — the keyword itself, its required id value, and a
// sub-loop of direction/prio/state that closes the instant the next token is
// none of those (§4.9's InNest → Top transition).
func parseParentDeviceBlock(c *Cursor, enc *dpll.Encoder) error {
	c.Advance()
	idStr, ok := c.TakeValue()
	if !ok {
		return &MissingArgument{Keyword: "parent-device"}
	}
	id, perr := parseUint(idStr, 32)
	if perr != nil {
		return &InvalidArgument{Keyword: "parent-device", Value: idStr, Reason: perr.Error()}
	}

	h, err := enc.OpenNested("parent-device")
	if err != nil {
		return &AllocationFailure{Reason: err.Error()}
	}
	if err := h.PutU32("parent-id", uint32(id)); err != nil {
		return &AllocationFailure{Reason: err.Error()}
	}

nestLoop:
	for {
		tok, ok := c.Peek()
		if !ok {
			break
		}
		switch tok {
		case "direction":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return &MissingArgument{Keyword: "direction"}
			}
			code, eerr := dpll.PinDirectionEnum.Encode(v)
			if eerr != nil {
				return &InvalidArgument{Keyword: "direction", Value: v, Reason: eerr.Error()}
			}
			h.PutU32("direction", code)
		case "prio":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return &MissingArgument{Keyword: "prio"}
			}
			n, perr := parseUint(v, 32)
			if perr != nil {
				return &InvalidArgument{Keyword: "prio", Value: v, Reason: perr.Error()}
			}
			h.PutU32("prio", uint32(n))
		case "state":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return &MissingArgument{Keyword: "state"}
			}
			code, eerr := dpll.PinStateEnum.Encode(v)
			if eerr != nil {
				return &InvalidArgument{Keyword: "state", Value: v, Reason: eerr.Error()}
			}
			h.PutU32("state", code)
		default:
			break nestLoop
		}
	}

	if err := enc.CloseNested(h); err != nil {
		return &AllocationFailure{Reason: err.Error()}
	}
	return nil
}

// parseParentPinBlock consumes "parent-pin ID [state ...]".
func parseParentPinBlock(c *Cursor, enc *dpll.Encoder) error {
	c.Advance()
	idStr, ok := c.TakeValue()
	if !ok {
		return &MissingArgument{Keyword: "parent-pin"}
	}
	id, perr := parseUint(idStr, 32)
	if perr != nil {
		return &InvalidArgument{Keyword: "parent-pin", Value: idStr, Reason: perr.Error()}
	}

	h, err := enc.OpenNested("parent-pin")
	if err != nil {
		return &AllocationFailure{Reason: err.Error()}
	}
	if err := h.PutU32("parent-id", uint32(id)); err != nil {
		return &AllocationFailure{Reason: err.Error()}
	}

nestLoop:
	for {
		tok, ok := c.Peek()
		if !ok {
			break
		}
		switch tok {
		case "state":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return &MissingArgument{Keyword: "state"}
			}
			code, eerr := dpll.PinStateEnum.Encode(v)
			if eerr != nil {
				return &InvalidArgument{Keyword: "state", Value: v, Reason: eerr.Error()}
			}
			h.PutU32("state", code)
		default:
			break nestLoop
		}
	}

	if err := enc.CloseNested(h); err != nil {
		return &AllocationFailure{Reason: err.Error()}
	}
	return nil
}

// parseReferenceSyncBlock consumes "reference-sync ID [state ...]".
func parseReferenceSyncBlock(c *Cursor, enc *dpll.Encoder) error {
	c.Advance()
	idStr, ok := c.TakeValue()
	if !ok {
		return &MissingArgument{Keyword: "reference-sync"}
	}
	id, perr := parseUint(idStr, 32)
	if perr != nil {
		return &InvalidArgument{Keyword: "reference-sync", Value: idStr, Reason: perr.Error()}
	}

	h, err := enc.OpenNested("reference-sync")
	if err != nil {
		return &AllocationFailure{Reason: err.Error()}
	}
	if err := h.PutU32("pin-id", uint32(id)); err != nil {
		return &AllocationFailure{Reason: err.Error()}
	}

nestLoop:
	for {
		tok, ok := c.Peek()
		if !ok {
			break
		}
		switch tok {
		case "state":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return &MissingArgument{Keyword: "state"}
			}
			code, eerr := dpll.PinStateEnum.Encode(v)
			if eerr != nil {
				return &InvalidArgument{Keyword: "state", Value: v, Reason: eerr.Error()}
			}
			h.PutU32("state", code)
		default:
			break nestLoop
		}
	}

	if err := enc.CloseNested(h); err != nil {
		return &AllocationFailure{Reason: err.Error()}
	}
	return nil
}

// parsePinIDGet builds the PIN_ID_GET request.
func parsePinIDGet(c *Cursor) ([]byte, error) {
	enc := dpll.NewEncoder(dpll.PinSchema)

	for !c.Empty() {
		tok, _ := c.Peek()
		switch tok {
		case "module-name":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "module-name"}
			}
			enc.PutStr("module-name", v)
		case "clock-id":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "clock-id"}
			}
			n, perr := parseUint(v, 64)
			if perr != nil {
				return nil, &InvalidArgument{Keyword: "clock-id", Value: v, Reason: perr.Error()}
			}
			enc.PutU64("clock-id", n)
		case "board-label":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "board-label"}
			}
			enc.PutStr("board-label", v)
		case "panel-label":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "panel-label"}
			}
			enc.PutStr("panel-label", v)
		case "package-label":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "package-label"}
			}
			enc.PutStr("package-label", v)
		case "type":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "type"}
			}
			code, eerr := dpll.PinTypeEnum.Encode(v)
			if eerr != nil {
				return nil, &InvalidArgument{Keyword: "type", Value: v, Reason: eerr.Error()}
			}
			enc.PutU32("type", code)
		default:
			return nil, &UsageError{Usage: pinIDGetUsage}
		}
	}

	body, err := enc.Encode()
	if err != nil {
		return nil, &AllocationFailure{Reason: err.Error()}
	}
	return body, nil
}
