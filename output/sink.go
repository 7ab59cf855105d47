// Package output implements the abstract rendering sink the protocol
// engine's core calls (§1 "Out of scope" names this as an external
// collaborator described only by the interface consumed; §9's redesign
// note asks for an explicit SinkConfig threaded to every renderer instead
// of process-wide state). Two concrete sinks are provided so the repository
// is runnable end to end: plain indented text, and JSON.
package output

import "io"

// SinkConfig is the explicit, caller-owned configuration for output
// rendering (§9: "owned by main and passed down, not reached via
// module-level state").
type SinkConfig struct {
	JSON   bool
	Pretty bool
}

// Sink is the abstract rendering surface the renderers in this package (and
// ultimately the cli Operation Executors) write through. It mirrors the
// out_open_object/out_close_object/out_array/out_field_* calls named in
// §1/§6.3.
type Sink interface {
	// OpenObject begins rendering one entity. id is nil for a nested
	// sub-record that isn't itself a Device/Pin (a frequency-range,
	// parent-device, parent-pin or reference-sync entry).
	OpenObject(typeName string, id *uint32)
	CloseObject()

	// OpenArray begins a named sequence of sibling objects — the top-level
	// "device"/"pin"/"monitor" array, or a multi-attribute's sequence of
	// nested sub-records (frequency-supported, parent-device, ...).
	OpenArray(name string)
	CloseArray()

	FieldStr(name, value string)
	FieldU(name string, value uint64)
	FieldS(name string, value int64)
	FieldHex(name string, value uint64)

	// Finish completes rendering after every Open/Close call for the whole
	// invocation has been made, flushing any buffered representation (the
	// JSON sink defers all output to here; the text sink's Finish is a
	// no-op since it streams as it goes).
	Finish() error
}

// New builds the Sink selected by cfg, writing to w.
func New(w io.Writer, cfg SinkConfig) Sink {
	if cfg.JSON {
		return newJSONSink(w, cfg.Pretty)
	}
	return newTextSink(w)
}
