package dpll

import (
	"fmt"

	"github.com/mdlayher/netlink"
)

// maxMessageSize bounds a single encoded request. netlink messages this
// client ever builds (attribute-count-wise) stay far under this; it exists
// so a runaway caller (e.g. thousands of parent-device blocks) fails with a
// clear error instead of silently producing an oversized datagram the
// kernel would reject.
const maxMessageSize = 1 << 16

// ErrBufferOverflow is returned when an encoded message would exceed
// maxMessageSize.
type ErrBufferOverflow struct {
	Size int
}

func (e *ErrBufferOverflow) Error() string {
	return fmt.Sprintf("dpll: encoded message too large: %d bytes", e.Size)
}

// Encoder is the Wire Encoder (§4.3): a typed builder that appends
// attributes to an outbound message, indexing the schema by symbolic name
// so Operation Executors never have to know wire ids.
type Encoder struct {
	schema *ObjectSchema
	ae     *netlink.AttributeEncoder
}

// NewEncoder starts a request for the given top-level schema.
func NewEncoder(schema *ObjectSchema) *Encoder {
	return &Encoder{schema: schema, ae: netlink.NewAttributeEncoder()}
}

func (e *Encoder) lookup(name string, want Kind) (AttrDef, error) {
	def, ok := e.schema.ByName(name)
	if !ok {
		return AttrDef{}, fmt.Errorf("dpll: %s has no attribute %q", e.schema.Name, name)
	}
	if want != KindNested && def.Kind != want && !(want == KindU32 && def.Kind == KindU8) {
		return AttrDef{}, fmt.Errorf("dpll: %s.%s is not kind %v", e.schema.Name, name, want)
	}
	return def, nil
}

// PutU32 appends a u32 attribute by symbolic name.
func (e *Encoder) PutU32(name string, v uint32) error {
	def, err := e.lookup(name, KindU32)
	if err != nil {
		return err
	}
	e.ae.Uint32(def.ID, v)
	return nil
}

// PutU64 appends a u64 attribute by symbolic name.
func (e *Encoder) PutU64(name string, v uint64) error {
	def, err := e.lookup(name, KindU64)
	if err != nil {
		return err
	}
	e.ae.Uint64(def.ID, v)
	return nil
}

// PutS32 appends a s32 attribute by symbolic name.
func (e *Encoder) PutS32(name string, v int32) error {
	def, err := e.lookup(name, KindS32)
	if err != nil {
		return err
	}
	e.ae.Int32(def.ID, v)
	return nil
}

// PutStr appends a NUL-terminated string attribute by symbolic name.
func (e *Encoder) PutStr(name string, v string) error {
	def, err := e.lookup(name, KindString)
	if err != nil {
		return err
	}
	e.ae.String(def.ID, v)
	return nil
}

// NestedHandle is the open nested attribute returned by OpenNested: a
// separate attribute buffer for the nested body, appended to the parent as
// raw bytes on Close. This is what lets the same top-level attribute id
// (e.g. parent-device) be opened and closed repeatedly to build a
// multi-attribute sequence of nested records (§4.9's "opens a nested
// attribute and enters a sub-loop").
type NestedHandle struct {
	parent *Encoder
	attrID uint16
	schema *ObjectSchema
	body   *netlink.AttributeEncoder
}

// OpenNested begins a nested attribute identified by name, returning a
// handle whose Put* methods index the nested sub-schema.
func (e *Encoder) OpenNested(name string) (*NestedHandle, error) {
	def, err := e.lookup(name, KindNested)
	if err != nil {
		return nil, err
	}
	if def.Sub == nil {
		return nil, fmt.Errorf("dpll: %s.%s has no nested schema", e.schema.Name, name)
	}
	return &NestedHandle{
		parent: e,
		attrID: def.ID,
		schema: def.Sub,
		body:   netlink.NewAttributeEncoder(),
	}, nil
}

func (h *NestedHandle) lookup(name string, want Kind) (AttrDef, error) {
	def, ok := h.schema.ByName(name)
	if !ok {
		return AttrDef{}, fmt.Errorf("dpll: %s has no attribute %q", h.schema.Name, name)
	}
	if def.Kind != want {
		return AttrDef{}, fmt.Errorf("dpll: %s.%s is not kind %v", h.schema.Name, name, want)
	}
	return def, nil
}

// PutU32 appends a u32 sub-attribute by symbolic name.
func (h *NestedHandle) PutU32(name string, v uint32) error {
	def, err := h.lookup(name, KindU32)
	if err != nil {
		return err
	}
	h.body.Uint32(def.ID, v)
	return nil
}

// PutS32 appends a s32 sub-attribute by symbolic name.
func (h *NestedHandle) PutS32(name string, v int32) error {
	def, err := h.lookup(name, KindS32)
	if err != nil {
		return err
	}
	h.body.Int32(def.ID, v)
	return nil
}

// PutSigned appends a variable-width signed sub-attribute; this client
// always writes the 8-byte form, which decoders (§4.6) also accept.
func (h *NestedHandle) PutSigned(name string, v int64) error {
	def, err := h.lookup(name, KindSigned)
	if err != nil {
		return err
	}
	h.body.Int64(def.ID, v)
	return nil
}

// CloseNested finishes a nested attribute, appending its encoded body to the
// parent encoder under the attribute id OpenNested resolved.
func (e *Encoder) CloseNested(h *NestedHandle) error {
	buf, err := h.body.Encode()
	if err != nil {
		return err
	}
	e.ae.Bytes(h.attrID, buf)
	return nil
}

// Encode finalises the message, enforcing maxMessageSize (§4.3's
// BufferOverflow).
func (e *Encoder) Encode() ([]byte, error) {
	buf, err := e.ae.Encode()
	if err != nil {
		return nil, err
	}
	if len(buf) > maxMessageSize {
		return nil, &ErrBufferOverflow{Size: len(buf)}
	}
	return buf, nil
}
