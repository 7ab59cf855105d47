package dpll

import "testing"

func TestEncodeDecodeNestedRoundTrip(t *testing.T) {
	enc := NewEncoder(PinSchema)
	if err := enc.PutU32("id", 3); err != nil {
		t.Fatalf("PutU32(id): %v", err)
	}

	h1, err := enc.OpenNested("parent-device")
	if err != nil {
		t.Fatalf("OpenNested: %v", err)
	}
	if err := h1.PutU32("parent-id", 0); err != nil {
		t.Fatalf("PutU32(parent-id): %v", err)
	}
	if err := h1.PutU32("direction", 0); err != nil {
		t.Fatalf("PutU32(direction): %v", err)
	}
	if err := h1.PutU32("prio", 10); err != nil {
		t.Fatalf("PutU32(prio): %v", err)
	}
	if err := h1.PutU32("state", 0); err != nil {
		t.Fatalf("PutU32(state): %v", err)
	}
	if err := enc.CloseNested(h1); err != nil {
		t.Fatalf("CloseNested: %v", err)
	}

	h2, err := enc.OpenNested("parent-device")
	if err != nil {
		t.Fatalf("OpenNested: %v", err)
	}
	if err := h2.PutU32("parent-id", 1); err != nil {
		t.Fatalf("PutU32(parent-id): %v", err)
	}
	if err := h2.PutU32("direction", 1); err != nil {
		t.Fatalf("PutU32(direction): %v", err)
	}
	if err := enc.CloseNested(h2); err != nil {
		t.Fatalf("CloseNested: %v", err)
	}

	body, err := enc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	p, err := DecodePin(body)
	if err != nil {
		t.Fatalf("DecodePin: %v", err)
	}

	if len(p.ParentDevice) != 2 {
		t.Fatalf("ParentDevice = %+v, want 2 entries", p.ParentDevice)
	}
	if p.ParentDevice[0].ParentID != 0 || *p.ParentDevice[0].Direction != "input" ||
		*p.ParentDevice[0].Prio != 10 || *p.ParentDevice[0].State != "connected" {
		t.Fatalf("unexpected first entry: %+v", p.ParentDevice[0])
	}
	if p.ParentDevice[1].ParentID != 1 || *p.ParentDevice[1].Direction != "output" ||
		p.ParentDevice[1].Prio != nil || p.ParentDevice[1].State != nil {
		t.Fatalf("unexpected second entry: %+v", p.ParentDevice[1])
	}
}

func TestEncodeUnknownAttributeName(t *testing.T) {
	enc := NewEncoder(PinSchema)
	if err := enc.PutU32("does-not-exist", 1); err == nil {
		t.Fatal("PutU32 with unknown name returned nil error")
	}
}

func TestEncodeOrderingMatchesCallOrder(t *testing.T) {
	enc := NewEncoder(DeviceSchema)
	if err := enc.PutU32("id", 5); err != nil {
		t.Fatalf("PutU32(id): %v", err)
	}
	if err := enc.PutU32("id", 6); err != nil {
		t.Fatalf("PutU32(id) again: %v", err)
	}
	body, err := enc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Last-wins is a kernel semantic (spec §4.9), not a Wire Encoder
	// guarantee: both attributes are on the wire, in call order, and the
	// decoder's flat single-attribute table naturally keeps only the last
	// one it walks.
	d, err := DecodeDevice(body)
	if err != nil {
		t.Fatalf("DecodeDevice: %v", err)
	}
	if d.ID != 6 {
		t.Fatalf("ID = %d, want 6 (last attribute wins)", d.ID)
	}
}
