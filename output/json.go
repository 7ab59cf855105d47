package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// jsonFrame is one entry of the builder stack: either an object (m) or an
// array (a), plus the closure that attaches the finished container into its
// parent once Close*() pops it.
type jsonFrame struct {
	m       map[string]any
	a       *[]any
	onClose func(v any)
}

// jsonSink builds the tree in memory and marshals it once on Finish, so
// Pretty can simply select json.MarshalIndent vs json.Marshal over the
// whole document rather than hand-rolling indentation per line.
type jsonSink struct {
	w      io.Writer
	pretty bool
	stack  []*jsonFrame
}

func newJSONSink(w io.Writer, pretty bool) *jsonSink {
	root := &jsonFrame{m: map[string]any{}}
	return &jsonSink{w: w, pretty: pretty, stack: []*jsonFrame{root}}
}

func (s *jsonSink) top() *jsonFrame {
	return s.stack[len(s.stack)-1]
}

func (s *jsonSink) push(f *jsonFrame) {
	s.stack = append(s.stack, f)
}

func (s *jsonSink) pop() *jsonFrame {
	f := s.top()
	s.stack = s.stack[:len(s.stack)-1]
	return f
}

// OpenObject starts a new object. typeName and id are immaterial to the
// JSON shape itself (they drive the text sink's header instead); a
// renderer that wants "id" in the JSON output calls FieldU("id", ...) like
// any other field.
//
// If the enclosing frame is an array, the new object becomes one of its
// elements on Close. If the enclosing frame is an object (the single-result
// case, with no wrapping array), the new object's fields are merged
// directly into the parent — per §6.3, a single-result JSON reply is "a
// single object", not an object wrapped in a named key.
func (s *jsonSink) OpenObject(typeName string, id *uint32) {
	parent := s.top()
	if parent.a != nil {
		obj := map[string]any{}
		s.push(&jsonFrame{m: obj, onClose: func(v any) {
			*parent.a = append(*parent.a, v)
		}})
		return
	}
	s.push(&jsonFrame{m: parent.m, onClose: func(v any) {}})
}

func (s *jsonSink) CloseObject() {
	f := s.pop()
	f.onClose(f.m)
}

func (s *jsonSink) OpenArray(name string) {
	parent := s.top()
	arr := []any{}
	s.push(&jsonFrame{a: &arr, onClose: func(v any) {
		switch {
		case parent.m != nil:
			parent.m[name] = v
		case parent.a != nil:
			*parent.a = append(*parent.a, v)
		}
	}})
}

func (s *jsonSink) CloseArray() {
	f := s.pop()
	f.onClose(*f.a)
}

// set assigns value either as a named object field, or — when the current
// frame is an array of bare scalars (mode-supported, clock-quality-level,
// capabilities: "multi attributes become JSON arrays" per §6.3, with no
// wrapping object for the plain-scalar cases) — appends it, ignoring name.
func (s *jsonSink) set(name string, value any) {
	f := s.top()
	if f.a != nil {
		*f.a = append(*f.a, value)
		return
	}
	f.m[name] = value
}

func (s *jsonSink) FieldStr(name, value string) {
	s.set(name, value)
}

func (s *jsonSink) FieldU(name string, value uint64) {
	s.set(name, value)
}

func (s *jsonSink) FieldS(name string, value int64) {
	s.set(name, value)
}

// FieldHex still renders a JSON number, not a hex string: §6.3 reserves the
// hex-prefixed rendering for plain text, "numeric in JSON".
func (s *jsonSink) FieldHex(name string, value uint64) {
	s.set(name, value)
}

func (s *jsonSink) Finish() error {
	if len(s.stack) != 1 {
		return fmt.Errorf("output: json sink finished with %d unclosed frames", len(s.stack)-1)
	}
	root := s.stack[0].m

	var (
		buf []byte
		err error
	)
	if s.pretty {
		buf, err = json.MarshalIndent(root, "", "  ")
	} else {
		buf, err = json.Marshal(root)
	}
	if err != nil {
		return err
	}
	_, err = s.w.Write(append(buf, '\n'))
	return err
}
