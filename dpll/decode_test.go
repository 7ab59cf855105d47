package dpll

import (
	"testing"

	"github.com/mdlayher/netlink"
)

// TestMultiAttributeFaithfulness checks §8 property 2: a reply carrying N
// top-level attributes declared multi decodes to an N-element sequence,
// wire order preserved.
func TestMultiAttributeFaithfulness(t *testing.T) {
	ae := netlink.NewAttributeEncoder()
	ae.Uint32(devAttrID, 7)
	ae.Uint32(devAttrModeSupported, 0) // manual
	ae.Uint32(devAttrModeSupported, 1) // automatic
	ae.Uint32(devAttrModeSupported, 0) // manual again: repeats are legal
	body, err := ae.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	d, err := DecodeDevice(body)
	if err != nil {
		t.Fatalf("DecodeDevice: %v", err)
	}

	want := []string{"manual", "automatic", "manual"}
	if len(d.ModeSupported) != len(want) {
		t.Fatalf("ModeSupported = %v, want %v", d.ModeSupported, want)
	}
	for i := range want {
		if d.ModeSupported[i] != want[i] {
			t.Errorf("ModeSupported[%d] = %q, want %q", i, d.ModeSupported[i], want[i])
		}
	}
}

func TestDecodeDeviceMissingID(t *testing.T) {
	ae := netlink.NewAttributeEncoder()
	ae.String(devAttrModuleName, "sample")
	body, err := ae.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if _, err := DecodeDevice(body); err == nil {
		t.Fatal("DecodeDevice with no id returned nil error, want DecodeError")
	}
}

func TestDecodeDeviceFields(t *testing.T) {
	ae := netlink.NewAttributeEncoder()
	ae.Uint32(devAttrID, 0)
	ae.String(devAttrModuleName, "dpll0")
	ae.Uint32(devAttrMode, 0)
	ae.Uint64(devAttrClockID, 0xAABBCCDD)
	ae.Uint32(devAttrType, 1) // eec
	ae.Uint32(devAttrLockStatus, 1)
	ae.Uint32(devAttrLockStatusError, 0)
	ae.Int32(devAttrTemp, 42500)
	ae.Uint32(devAttrPhaseOffsetMonitor, 1)
	ae.Uint32(devAttrPhaseOffsetAvgFactor, 4)
	body, err := ae.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	d, err := DecodeDevice(body)
	if err != nil {
		t.Fatalf("DecodeDevice: %v", err)
	}

	if d.ID != 0 || d.ModuleName != "dpll0" || d.Mode != "manual" || d.ClockID != 0xAABBCCDD ||
		d.Type != "eec" || d.LockStatus != "locked" || d.LockStatusError != "none" ||
		d.PhaseOffsetMonitor != "enabled" || d.PhaseOffsetAvgFactor != 4 {
		t.Fatalf("unexpected Device: %+v", d)
	}
	if d.Temp == nil || *d.Temp != 42500 {
		t.Fatalf("Temp = %v, want 42500", d.Temp)
	}
}

func TestDecodePinNestedParentDevice(t *testing.T) {
	encodeParentDevice := func(parentID uint32, direction *uint32, prio *uint32, state *uint32) []byte {
		pe := netlink.NewAttributeEncoder()
		pe.Uint32(parentDeviceAttrParentID, parentID)
		if direction != nil {
			pe.Uint32(parentDeviceAttrDirection, *direction)
		}
		if prio != nil {
			pe.Uint32(parentDeviceAttrPrio, *prio)
		}
		if state != nil {
			pe.Uint32(parentDeviceAttrState, *state)
		}
		b, err := pe.Encode()
		if err != nil {
			t.Fatalf("encode parent-device: %v", err)
		}
		return b
	}

	dirIn := uint32(0)
	dirOut := uint32(1)
	prio10 := uint32(10)
	stateConnected := uint32(0)

	ae := netlink.NewAttributeEncoder()
	ae.Uint32(pinAttrID, 3)
	ae.Bytes(pinAttrParentDevice, encodeParentDevice(0, &dirIn, &prio10, &stateConnected))
	ae.Bytes(pinAttrParentDevice, encodeParentDevice(1, &dirOut, nil, nil))
	body, err := ae.Encode()
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
	first, second := p.ParentDevice[0], p.ParentDevice[1]
	if first.ParentID != 0 || first.Direction == nil || *first.Direction != "input" ||
		first.Prio == nil || *first.Prio != 10 || first.State == nil || *first.State != "connected" {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if second.ParentID != 1 || second.Direction == nil || *second.Direction != "output" ||
		second.Prio != nil || second.State != nil {
		t.Fatalf("unexpected second entry: %+v", second)
	}
}

func TestDecodeSignedVariableWidth(t *testing.T) {
	ae32 := netlink.NewAttributeEncoder()
	ae32.Int32(pinAttrFractionalFreqOffset, -5)
	ae32.Uint32(pinAttrID, 1)
	body32, err := ae32.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	p32, err := DecodePin(body32)
	if err != nil {
		t.Fatalf("DecodePin: %v", err)
	}
	if p32.FractionalFrequencyOffset == nil || *p32.FractionalFrequencyOffset != -5 {
		t.Fatalf("FractionalFrequencyOffset (32-bit) = %v, want -5", p32.FractionalFrequencyOffset)
	}

	ae64 := netlink.NewAttributeEncoder()
	ae64.Int64(pinAttrFractionalFreqOffset, -5_000_000_000)
	ae64.Uint32(pinAttrID, 1)
	body64, err := ae64.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	p64, err := DecodePin(body64)
	if err != nil {
		t.Fatalf("DecodePin: %v", err)
	}
	if p64.FractionalFrequencyOffset == nil || *p64.FractionalFrequencyOffset != -5_000_000_000 {
		t.Fatalf("FractionalFrequencyOffset (64-bit) = %v, want -5000000000", p64.FractionalFrequencyOffset)
	}
}

func TestDecodeUnknownAttributeIgnored(t *testing.T) {
	ae := netlink.NewAttributeEncoder()
	ae.Uint32(pinAttrID, 9)
	const bogusID = 250
	ae.Uint32(bogusID, 1)
	body, err := ae.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	p, err := DecodePin(body)
	if err != nil {
		t.Fatalf("DecodePin: %v", err)
	}
	if p.ID != 9 {
		t.Fatalf("ID = %d, want 9", p.ID)
	}
}
