package dpll

// FreqRange is the {min, max} sub-record shared by frequency_supported and
// esync_frequency_supported. Either bound may be absent on the wire.
type FreqRange struct {
	Min *uint64
	Max *uint64
}

// ParentDevice is one entry of a pin's parent_device sequence: the pin's
// attachment state relative to one of its parent devices.
type ParentDevice struct {
	ParentID    uint32
	Direction   *string
	Prio        *uint32
	State       *string
	PhaseOffset *int64
}

// ParentPin is one entry of a pin's parent_pin sequence (mux pins can have
// other pins as their "parent" rather than a device).
type ParentPin struct {
	ParentID uint32
	State    *string
}

// ReferenceSync is one entry of a pin's reference_sync sequence: another pin
// used as this pin's phase reference.
type ReferenceSync struct {
	PinID uint32
	State *string
}

// Device is a clock-lock instance exposed by the kernel.
type Device struct {
	ID                  uint32
	ModuleName          string
	Mode                string
	ModeSupported       []string
	ClockID             uint64
	Type                string
	LockStatus          string
	LockStatusError     string
	ClockQualityLevel   []string
	Temp                *int32 // milli-degrees Celsius, as decoded off the wire
	PhaseOffsetMonitor  string
	PhaseOffsetAvgFactor uint32
}

// Pin is a clock signal attachment point, potentially shared by several
// devices.
type Pin struct {
	ID                        uint32
	ModuleName                string
	ClockID                   uint64
	BoardLabel                string
	PanelLabel                string
	PackageLabel              string
	Type                      string
	Frequency                 uint64
	FrequencySupported        []FreqRange
	Capabilities              []string
	PhaseAdjustMin            *int32
	PhaseAdjustMax            *int32
	PhaseAdjustGran           *int32
	PhaseAdjust               *int32
	FractionalFrequencyOffset *int64
	EsyncFrequency            uint64
	EsyncFrequencySupported   []FreqRange
	EsyncPulse                uint32
	ParentDevice              []ParentDevice
	ParentPin                 []ParentPin
	ReferenceSync             []ReferenceSync
}

// EventKind identifies the variety of an asynchronous Notification Event.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventDeviceCreate
	EventDeviceChange
	EventDeviceDelete
	EventPinCreate
	EventPinChange
	EventPinDelete
)

// Tag is the bracketed prefix the notification loop prints ahead of each
// event's rendered payload, e.g. "[DEVICE_CREATE]".
func (k EventKind) Tag() string {
	switch k {
	case EventDeviceCreate:
		return "[DEVICE_CREATE]"
	case EventDeviceChange:
		return "[DEVICE_CHANGE]"
	case EventDeviceDelete:
		return "[DEVICE_DELETE]"
	case EventPinCreate:
		return "[PIN_CREATE]"
	case EventPinChange:
		return "[PIN_CHANGE]"
	case EventPinDelete:
		return "[PIN_DELETE]"
	default:
		return "[UNKNOWN]"
	}
}

// Event is the envelope delivered by the Notification Loop: one kind, one
// payload.
type Event struct {
	Kind   EventKind
	Device *Device
	Pin    *Pin
}
