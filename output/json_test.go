package output

import (
	"bytes"
	"encoding/json"
	"testing"
)

// TestJSONSinkDump builds the two-element device dump from §8 scenario (a)
// end to end — OpenArray, two objects of fields, CloseArray, Finish — and
// checks the marshaled bytes. This is also the path that caught the
// monitor Finish() omission: a sink that never has Finish called on it
// writes nothing to buf at all.
func TestJSONSinkDump(t *testing.T) {
	var buf bytes.Buffer
	s := newJSONSink(&buf, false)

	s.OpenArray("device")
	for _, d := range []struct {
		id   uint32
		mode string
		typ  string
	}{
		{0, "manual", "eec"},
		{1, "automatic", "pps"},
	} {
		id := d.id
		s.OpenObject("device", &id)
		s.FieldU("id", uint64(d.id))
		s.FieldStr("mode", d.mode)
		s.FieldStr("type", d.typ)
		s.CloseObject()
	}
	s.CloseArray()

	if err := s.Finish(); err != nil {
		t.Fatalf("Finish() error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("Finish() wrote nothing to the underlying writer")
	}

	var got struct {
		Device []struct {
			ID   uint64 `json:"id"`
			Mode string `json:"mode"`
			Type string `json:"type"`
		} `json:"device"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal(%s): %v", buf.Bytes(), err)
	}
	if len(got.Device) != 2 {
		t.Fatalf("len(device) = %d, want 2: %s", len(got.Device), buf.Bytes())
	}
	if got.Device[0].ID != 0 || got.Device[0].Mode != "manual" || got.Device[0].Type != "eec" {
		t.Fatalf("device[0] = %+v, want {0 manual eec}", got.Device[0])
	}
	if got.Device[1].ID != 1 || got.Device[1].Mode != "automatic" || got.Device[1].Type != "pps" {
		t.Fatalf("device[1] = %+v, want {1 automatic pps}", got.Device[1])
	}
}

// TestJSONSinkSingleResultIsBareObject covers §6.3: a single-result reply
// (no enclosing array) renders as one bare object, not an object nested
// under a named key.
func TestJSONSinkSingleResultIsBareObject(t *testing.T) {
	var buf bytes.Buffer
	s := newJSONSink(&buf, false)

	id := uint32(7)
	s.OpenObject("device", &id)
	s.FieldU("id", uint64(id))
	s.FieldStr("mode", "manual")
	s.CloseObject()

	if err := s.Finish(); err != nil {
		t.Fatalf("Finish() error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal(%s): %v", buf.Bytes(), err)
	}
	if _, ok := got["device"]; ok {
		t.Fatalf("single result wrapped under a \"device\" key: %s", buf.Bytes())
	}
	if got["mode"] != "manual" {
		t.Fatalf("mode = %v, want \"manual\": %s", got["mode"], buf.Bytes())
	}
}

// TestJSONSinkScalarArray covers the bare-scalar multi-attribute shape
// (mode-supported, clock-quality-level, capabilities): a named array of
// plain values with no per-element wrapping object.
func TestJSONSinkScalarArray(t *testing.T) {
	var buf bytes.Buffer
	s := newJSONSink(&buf, false)

	id := uint32(0)
	s.OpenObject("device", &id)
	s.FieldU("id", uint64(id))
	s.OpenArray("mode-supported")
	s.FieldStr("mode-supported", "manual")
	s.FieldStr("mode-supported", "automatic")
	s.CloseArray()
	s.CloseObject()

	if err := s.Finish(); err != nil {
		t.Fatalf("Finish() error: %v", err)
	}

	var got struct {
		ModeSupported []string `json:"mode-supported"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal(%s): %v", buf.Bytes(), err)
	}
	if len(got.ModeSupported) != 2 || got.ModeSupported[0] != "manual" || got.ModeSupported[1] != "automatic" {
		t.Fatalf("mode-supported = %v, want [manual automatic]", got.ModeSupported)
	}
}

// TestJSONSinkFinishDetectsUnclosedFrame guards the Finish() bug class: a
// sink left with an open object/array reports an error rather than
// silently marshaling a partial tree.
func TestJSONSinkFinishDetectsUnclosedFrame(t *testing.T) {
	var buf bytes.Buffer
	s := newJSONSink(&buf, false)

	s.OpenArray("device")
	if err := s.Finish(); err == nil {
		t.Fatal("Finish() with an unclosed array returned nil error, want non-nil")
	}
}

// TestRenderIdempotent is §8 testable property 5: rendering the same
// decoded entity twice produces identical output bytes.
func TestRenderIdempotent(t *testing.T) {
	render := func() []byte {
		var buf bytes.Buffer
		s := newJSONSink(&buf, false)
		id := uint32(3)
		s.OpenObject("device", &id)
		s.FieldU("id", uint64(id))
		s.FieldStr("mode", "manual")
		s.CloseObject()
		if err := s.Finish(); err != nil {
			t.Fatalf("Finish() error: %v", err)
		}
		return buf.Bytes()
	}

	first := render()
	second := render()
	if !bytes.Equal(first, second) {
		t.Fatalf("rendering the same entity twice produced different bytes:\n%s\nvs\n%s", first, second)
	}
}
