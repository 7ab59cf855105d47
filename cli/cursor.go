// Package cli implements the token dispatch and argument parsing layer
// described in §4.1, §4.8 and §4.9: an immutable cursor over the user's
// argument vector, a three-level object/verb/argument-loop dispatcher, and
// one Operation Executor per verb.
package cli

// Cursor is a read-only view over the user's argument vector with
// position, per §4.1. It never mutates the underlying slice and never
// panics on an empty cursor.
//
// The legacy C tool this client replaces conflated matching with
// advancement; Match here is the single match_and_advance primitive
// called for, so a keyword is never consumed twice and never left
// un-consumed.
type Cursor struct {
	toks []string
	pos  int
}

// NewCursor wraps an argument vector for dispatch.
func NewCursor(toks []string) *Cursor {
	return &Cursor{toks: toks}
}

// Empty reports whether there are no more tokens.
func (c *Cursor) Empty() bool {
	return c.pos >= len(c.toks)
}

// Peek returns the head token without consuming it, or ok=false if empty.
func (c *Cursor) Peek() (tok string, ok bool) {
	if c.Empty() {
		return "", false
	}
	return c.toks[c.pos], true
}

// Advance consumes the head token, if any. Advancing an empty cursor is a
// no-op, never a panic.
func (c *Cursor) Advance() {
	if !c.Empty() {
		c.pos++
	}
}

// Take advances and returns the consumed token, or ok=false if empty.
func (c *Cursor) Take() (tok string, ok bool) {
	tok, ok = c.Peek()
	if ok {
		c.Advance()
	}
	return tok, ok
}

// Match reports whether the head token equals lit, consuming it only on a
// match. A miss (absent head, or a head that differs) leaves the cursor
// untouched.
func (c *Cursor) Match(lit string) bool {
	tok, ok := c.Peek()
	if !ok || tok != lit {
		return false
	}
	c.Advance()
	return true
}

// TakeValue requires one more token to exist, for use right after a keyword
// has been matched (§4.9 step 2: "requires one more token"). It reports
// MissingArgument via ok=false so callers can build the right error with
// the keyword name in hand.
func (c *Cursor) TakeValue() (tok string, ok bool) {
	return c.Take()
}
