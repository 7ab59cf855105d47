package cli

import (
	"github.com/orosp/dpll/dpll"
)

const deviceShowUsage = "usage: dpll device show [id ID]"
const deviceSetUsage = "usage: dpll device set id ID [phase-offset-monitor {true|false|1|0}] [phase-offset-avg-factor U32]"
const deviceIDGetUsage = "usage: dpll device id-get [module-name STR] [clock-id U64] [type {pps|eec}]"
const deviceHelpUsage = "usage: dpll device {show|set|id-get|help}"

// parseDeviceShow builds the DEVICE_GET request from "device show [id ID]"
// (§6.1). dump reports whether the unique-key attribute was absent, i.e.
// whether this is a dump-form reply rather than a single-element one (§4.9).
func parseDeviceShow(c *Cursor) (body []byte, dump bool, err error) {
	enc := dpll.NewEncoder(dpll.DeviceSchema)
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
		default:
			return nil, false, &UsageError{Usage: deviceShowUsage}
		}
	}

	body, eerr := enc.Encode()
	if eerr != nil {
		return nil, false, &AllocationFailure{Reason: eerr.Error()}
	}
	return body, dump, nil
}

// parseDeviceSet builds the DEVICE_SET request from "device set id ID
// [phase-offset-monitor ...] [phase-offset-avg-factor ...]". id is required
// (§4.9 "Required-attribute checks ... are performed after the loop").
func parseDeviceSet(c *Cursor) ([]byte, error) {
	enc := dpll.NewEncoder(dpll.DeviceSchema)
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
		case "phase-offset-monitor":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "phase-offset-monitor"}
			}
			b, perr := parseBool(v)
			if perr != nil {
				return nil, &InvalidArgument{Keyword: "phase-offset-monitor", Value: v, Reason: perr.Error()}
			}
			code := uint32(0)
			if b {
				code = 1
			}
			enc.PutU32("phase-offset-monitor", code)
		case "phase-offset-avg-factor":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "phase-offset-avg-factor"}
			}
			n, perr := parseUint(v, 32)
			if perr != nil {
				return nil, &InvalidArgument{Keyword: "phase-offset-avg-factor", Value: v, Reason: perr.Error()}
			}
			enc.PutU32("phase-offset-avg-factor", uint32(n))
		default:
			return nil, &UsageError{Usage: deviceSetUsage}
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

// parseDeviceIDGet builds the DEVICE_ID_GET request from "device id-get
// [module-name STR] [clock-id U64] [type {pps|eec}]". It is always a
// single-reply operation — an ambiguous match is a kernel error, not a dump.
func parseDeviceIDGet(c *Cursor) ([]byte, error) {
	enc := dpll.NewEncoder(dpll.DeviceSchema)

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
		case "type":
			c.Advance()
			v, ok := c.TakeValue()
			if !ok {
				return nil, &MissingArgument{Keyword: "type"}
			}
			code, eerr := dpll.DeviceTypeEnum.Encode(v)
			if eerr != nil {
				return nil, &InvalidArgument{Keyword: "type", Value: v, Reason: eerr.Error()}
			}
			enc.PutU32("type", code)
		default:
			return nil, &UsageError{Usage: deviceIDGetUsage}
		}
	}

	body, err := enc.Encode()
	if err != nil {
		return nil, &AllocationFailure{Reason: err.Error()}
	}
	return body, nil
}
