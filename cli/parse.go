package cli

import "strconv"

// parseUint and parseInt are the assumed-external parse_uint/parse_int
// numeric-string parsers (§1 "Out of scope"). Thin strconv wrappers: see
// DESIGN.md for why the standard library is the deliberate choice here.

func parseUint(s string, bitSize int) (uint64, error) {
	return strconv.ParseUint(s, 10, bitSize)
}

func parseInt(s string, bitSize int) (int64, error) {
	return strconv.ParseInt(s, 10, bitSize)
}

// parseBool accepts the four spellings §6.1 lists for
// phase-offset-monitor: true/false/1/0.
func parseBool(s string) (bool, error) {
	switch s {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, strconv.ErrSyntax
	}
}
