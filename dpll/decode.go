package dpll

import (
	"encoding/binary"
	"fmt"

	"github.com/mdlayher/netlink"
)

// DecodeError reports a reply or nested record that lacks its required id
// field (a top-level id, or a nested record's parent-id/pin-id). An
// attribute whose payload has the wrong length, including a variable-width
// signed field that is neither 4 nor 8 bytes, is not reported: it is treated
// as absent. Per §7, a DecodeError inside a dump element is
// soft — the element is skipped, never the whole dump; inside a single-reply
// operation it is hard.
type DecodeError struct {
	Schema string
	Attr   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("dpll: decode %s.%s: %s", e.Schema, e.Attr, e.Reason)
}

// messageContext is the message-scoped aggregate produced by the Wire
// Decoder for one reply. It is built and consumed entirely within the
// lifetime of one transport callback; nothing here outlives that window
// (§4.4/§4.5, §5).
type messageContext struct {
	schema *ObjectSchema
	single map[uint16][]byte
	multi  map[uint16][][]byte
}

// decodeMessage runs the first two passes of the pipeline from §4.4/§4.5
// against one message body: count pass sizes each multi-attribute sequence
// exactly, collect pass fills the flat table and the sequences, all without
// ever reallocating backing storage mid-walk. The expand pass is done by the
// parse* helpers in nested.go, called from DecodeDevice/DecodePin.
func decodeMessage(schema *ObjectSchema, data []byte) (*messageContext, error) {
	counts := make(map[uint16]int)

	dCount, err := netlink.NewAttributeDecoder(data)
	if err != nil {
		return nil, err
	}
	for dCount.Next() {
		def, ok := schema.ByID(dCount.Type())
		if !ok {
			continue
		}
		if def.Card == Multi {
			counts[def.ID]++
		}
	}
	if err := dCount.Err(); err != nil {
		return nil, err
	}

	ctx := &messageContext{
		schema: schema,
		single: make(map[uint16][]byte),
		multi:  make(map[uint16][][]byte, len(counts)),
	}
	for id, n := range counts {
		ctx.multi[id] = make([][]byte, 0, n)
	}

	dCollect, err := netlink.NewAttributeDecoder(data)
	if err != nil {
		return nil, err
	}
	for dCollect.Next() {
		id := dCollect.Type()
		def, ok := schema.ByID(id)
		if !ok {
			// Unknown attribute: ignored, not an error (schema is the single
			// source of truth for what this client understands).
			continue
		}
		body := dCollect.Bytes()
		if def.Card == Multi {
			ctx.multi[id] = append(ctx.multi[id], body)
		} else {
			ctx.single[id] = body
		}
	}
	if err := dCollect.Err(); err != nil {
		return nil, err
	}

	return ctx, nil
}

func (ctx *messageContext) has(id uint16) bool {
	_, ok := ctx.single[id]
	return ok
}

func (ctx *messageContext) u32(id uint16) (uint32, bool) {
	b, ok := ctx.single[id]
	if !ok || len(b) < 4 {
		return 0, false
	}
	return binary.NativeEndian.Uint32(b), true
}

func (ctx *messageContext) u64(id uint16) (uint64, bool) {
	b, ok := ctx.single[id]
	if !ok || len(b) < 8 {
		return 0, false
	}
	return binary.NativeEndian.Uint64(b), true
}

func (ctx *messageContext) s32(id uint16) (int32, bool) {
	v, ok := ctx.u32(id)
	if !ok {
		return 0, false
	}
	return int32(v), true
}

func (ctx *messageContext) str(id uint16) (string, bool) {
	b, ok := ctx.single[id]
	if !ok {
		return "", false
	}
	// netlink string attributes are NUL-terminated; AttributeDecoder.Bytes
	// hands back the raw payload including the terminator.
	if n := len(b); n > 0 && b[n-1] == 0 {
		b = b[:n-1]
	}
	return string(b), true
}

// signed decodes a KindSigned attribute, whose wire width is 4 or 8 bytes
// depending on which the kernel chose to send (§4.6, §9 "Variable-width
// signed fields"). Any other width makes the field absent, per spec.
func (ctx *messageContext) signed(id uint16) (int64, bool) {
	b, ok := ctx.single[id]
	if !ok {
		return 0, false
	}
	switch len(b) {
	case 4:
		return int64(int32(binary.NativeEndian.Uint32(b))), true
	case 8:
		return int64(binary.NativeEndian.Uint64(b)), true
	default:
		return 0, false
	}
}

func (ctx *messageContext) multiBodies(id uint16) [][]byte {
	return ctx.multi[id]
}

// nativeUint32 decodes a raw 4-byte attribute body the same way
// AttributeDecoder.Uint32 would, for callers (like decodeEnumList) that only
// hold onto the raw bytes from a multi-attribute sequence.
func nativeUint32(b []byte) uint32 {
	return binary.NativeEndian.Uint32(b)
}
