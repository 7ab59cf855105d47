package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestTextSinkStreamsWithoutFinish(t *testing.T) {
	var buf bytes.Buffer
	s := newTextSink(&buf)

	id := uint32(7)
	s.OpenObject("device", &id)
	s.FieldU("id", uint64(id))
	s.FieldStr("mode", "manual")
	s.CloseObject()

	if buf.Len() == 0 {
		t.Fatal("textSink wrote nothing before Finish(), want streamed output")
	}
	if err := s.Finish(); err != nil {
		t.Fatalf("Finish() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"device id 7:", "mode: manual"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output = %q, want it to contain %q", out, want)
		}
	}
}

func TestTextSinkIndentsNestedBlocks(t *testing.T) {
	var buf bytes.Buffer
	s := newTextSink(&buf)

	id := uint32(3)
	s.OpenObject("pin", &id)
	s.FieldU("id", uint64(id))
	s.OpenArray("parent-device")
	s.OpenObject("parent-device", nil)
	s.FieldU("parent-id", 0)
	s.CloseObject()
	s.CloseArray()
	s.CloseObject()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[2], "  parent-device:") {
		t.Fatalf("nested header line = %q, want one level of indent", lines[2])
	}
	if !strings.HasPrefix(lines[3], "    parent-id:") {
		t.Fatalf("nested field line = %q, want two levels of indent", lines[3])
	}
}
