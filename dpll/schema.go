package dpll

// Kind identifies how an attribute's wire payload should be interpreted.
type Kind int

const (
	KindU8 Kind = iota
	KindU32
	KindU64
	KindS32
	KindS64
	KindSigned // variable width: 4 bytes -> s32, 8 bytes -> s64
	KindString
	KindNested
)

// Cardinality says whether an attribute may appear more than once at its
// level. Multi attributes are the ones the Multi-Attribute Aggregator must
// count, then collect, then expand.
type Cardinality int

const (
	Single Cardinality = iota
	Multi
)

// AttrDef is one row of an Attribute Schema: the static description of a
// single wire attribute. Encoders index this table by Name; decoders index
// it by ID.
type AttrDef struct {
	ID   uint16
	Name string
	Kind Kind
	Card Cardinality
	// Sub is non-nil when Kind == KindNested; it is the schema used to parse
	// (or build) this attribute's nested body.
	Sub *ObjectSchema
}

// ObjectSchema is the static, per-object table of every attribute the core
// understands for one object (a top-level object like Device or Pin, or a
// nested sub-record like a parent-device entry).
type ObjectSchema struct {
	Name   string
	byID   map[uint16]AttrDef
	byName map[string]AttrDef
}

func newSchema(name string, defs ...AttrDef) *ObjectSchema {
	s := &ObjectSchema{
		Name:   name,
		byID:   make(map[uint16]AttrDef, len(defs)),
		byName: make(map[string]AttrDef, len(defs)),
	}
	for _, d := range defs {
		s.byID[d.ID] = d
		s.byName[d.Name] = d
	}
	return s
}

// ByID looks up an attribute definition by its wire id. Unknown ids are not
// an error: the decoder silently ignores attributes it doesn't recognise.
func (s *ObjectSchema) ByID(id uint16) (AttrDef, bool) {
	d, ok := s.byID[id]
	return d, ok
}

// ByName looks up an attribute definition by its symbolic name, used by the
// Wire Encoder and the Operation Executors' keyword tables.
func (s *ObjectSchema) ByName(name string) (AttrDef, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Wire attribute ids. Grouped by object, iota-numbered the way the pack's
// nbdnl and ethtool reference files lay out their own netlink constant
// blocks. These are this client's own numbering, not a transcription of the
// kernel uapi header; what matters for the protocol engine is that encoder
// and decoder agree, which this single schema table guarantees.
const (
	devAttrID Type = iota + 1
	devAttrModuleName
	devAttrMode
	devAttrModeSupported
	devAttrClockID
	devAttrType
	devAttrLockStatus
	devAttrLockStatusError
	devAttrClockQualityLevel
	devAttrTemp
	devAttrPhaseOffsetMonitor
	devAttrPhaseOffsetAvgFactor
)

const (
	pinAttrID Type = iota + 1
	pinAttrDeviceID // filter-only: "pin show device ID"
	pinAttrModuleName
	pinAttrClockID
	pinAttrBoardLabel
	pinAttrPanelLabel
	pinAttrPackageLabel
	pinAttrType
	pinAttrFrequency
	pinAttrFrequencySupported
	pinAttrCapabilities
	pinAttrPhaseAdjustMin
	pinAttrPhaseAdjustMax
	pinAttrPhaseAdjustGran
	pinAttrPhaseAdjust
	pinAttrFractionalFreqOffset
	pinAttrEsyncFrequency
	pinAttrEsyncFrequencySupported
	pinAttrEsyncPulse
	pinAttrParentDevice
	pinAttrParentPin
	pinAttrReferenceSync
	// Top-level keywords that double as nested sub-keywords (see §9 of the
	// spec: "state", "prio", "direction" are meaningful both at top level and
	// inside parent-device/parent-pin). The kernel is only documented to act
	// on the nested forms; the top-level attribute is still encoded for
	// observed backward compatibility.
	pinAttrDirection
	pinAttrPrio
	pinAttrState
)

const (
	freqAttrMin Type = iota + 1
	freqAttrMax
)

const (
	parentDeviceAttrParentID Type = iota + 1
	parentDeviceAttrDirection
	parentDeviceAttrPrio
	parentDeviceAttrState
	parentDeviceAttrPhaseOffset
)

const (
	parentPinAttrParentID Type = iota + 1
	parentPinAttrState
)

const (
	referenceSyncAttrPinID Type = iota + 1
	referenceSyncAttrState
)

// Type is the wire type of a netlink attribute (uint16 on the wire; kept as
// its own name here so schema tables read as attribute ids, not raw ints).
type Type = uint16

// FreqRangeSchema describes the {min, max} sub-record used by both
// frequency_supported and esync_frequency_supported.
var FreqRangeSchema = newSchema("frequency-range",
	AttrDef{ID: freqAttrMin, Name: "min", Kind: KindU64, Card: Single},
	AttrDef{ID: freqAttrMax, Name: "max", Kind: KindU64, Card: Single},
)

// ParentDeviceSchema describes one entry of a pin's parent_device sequence.
var ParentDeviceSchema = newSchema("parent-device",
	AttrDef{ID: parentDeviceAttrParentID, Name: "parent-id", Kind: KindU32, Card: Single},
	AttrDef{ID: parentDeviceAttrDirection, Name: "direction", Kind: KindU32, Card: Single},
	AttrDef{ID: parentDeviceAttrPrio, Name: "prio", Kind: KindU32, Card: Single},
	AttrDef{ID: parentDeviceAttrState, Name: "state", Kind: KindU32, Card: Single},
	AttrDef{ID: parentDeviceAttrPhaseOffset, Name: "phase-offset", Kind: KindSigned, Card: Single},
)

// ParentPinSchema describes one entry of a pin's parent_pin sequence.
var ParentPinSchema = newSchema("parent-pin",
	AttrDef{ID: parentPinAttrParentID, Name: "parent-id", Kind: KindU32, Card: Single},
	AttrDef{ID: parentPinAttrState, Name: "state", Kind: KindU32, Card: Single},
)

// ReferenceSyncSchema describes one entry of a pin's reference_sync sequence.
var ReferenceSyncSchema = newSchema("reference-sync",
	AttrDef{ID: referenceSyncAttrPinID, Name: "pin-id", Kind: KindU32, Card: Single},
	AttrDef{ID: referenceSyncAttrState, Name: "state", Kind: KindU32, Card: Single},
)

// DeviceSchema describes the top-level attributes of a DPLL_CMD_DEVICE_*
// message.
var DeviceSchema = newSchema("device",
	AttrDef{ID: devAttrID, Name: "id", Kind: KindU32, Card: Single},
	AttrDef{ID: devAttrModuleName, Name: "module-name", Kind: KindString, Card: Single},
	AttrDef{ID: devAttrMode, Name: "mode", Kind: KindU32, Card: Single},
	AttrDef{ID: devAttrModeSupported, Name: "mode-supported", Kind: KindU32, Card: Multi},
	AttrDef{ID: devAttrClockID, Name: "clock-id", Kind: KindU64, Card: Single},
	AttrDef{ID: devAttrType, Name: "type", Kind: KindU32, Card: Single},
	AttrDef{ID: devAttrLockStatus, Name: "lock-status", Kind: KindU32, Card: Single},
	AttrDef{ID: devAttrLockStatusError, Name: "lock-status-error", Kind: KindU32, Card: Single},
	AttrDef{ID: devAttrClockQualityLevel, Name: "clock-quality-level", Kind: KindU32, Card: Multi},
	AttrDef{ID: devAttrTemp, Name: "temp", Kind: KindS32, Card: Single},
	AttrDef{ID: devAttrPhaseOffsetMonitor, Name: "phase-offset-monitor", Kind: KindU32, Card: Single},
	AttrDef{ID: devAttrPhaseOffsetAvgFactor, Name: "phase-offset-avg-factor", Kind: KindU32, Card: Single},
)

// PinSchema describes the top-level attributes of a DPLL_CMD_PIN_* message.
var PinSchema = newSchema("pin",
	AttrDef{ID: pinAttrID, Name: "id", Kind: KindU32, Card: Single},
	AttrDef{ID: pinAttrDeviceID, Name: "device", Kind: KindU32, Card: Single},
	AttrDef{ID: pinAttrModuleName, Name: "module-name", Kind: KindString, Card: Single},
	AttrDef{ID: pinAttrClockID, Name: "clock-id", Kind: KindU64, Card: Single},
	AttrDef{ID: pinAttrBoardLabel, Name: "board-label", Kind: KindString, Card: Single},
	AttrDef{ID: pinAttrPanelLabel, Name: "panel-label", Kind: KindString, Card: Single},
	AttrDef{ID: pinAttrPackageLabel, Name: "package-label", Kind: KindString, Card: Single},
	AttrDef{ID: pinAttrType, Name: "type", Kind: KindU32, Card: Single},
	AttrDef{ID: pinAttrFrequency, Name: "frequency", Kind: KindU64, Card: Single},
	AttrDef{ID: pinAttrFrequencySupported, Name: "frequency-supported", Kind: KindNested, Card: Multi, Sub: FreqRangeSchema},
	AttrDef{ID: pinAttrCapabilities, Name: "capabilities", Kind: KindU32, Card: Single},
	AttrDef{ID: pinAttrPhaseAdjustMin, Name: "phase-adjust-min", Kind: KindS32, Card: Single},
	AttrDef{ID: pinAttrPhaseAdjustMax, Name: "phase-adjust-max", Kind: KindS32, Card: Single},
	AttrDef{ID: pinAttrPhaseAdjustGran, Name: "phase-adjust-gran", Kind: KindS32, Card: Single},
	AttrDef{ID: pinAttrPhaseAdjust, Name: "phase-adjust", Kind: KindS32, Card: Single},
	AttrDef{ID: pinAttrFractionalFreqOffset, Name: "fractional-frequency-offset", Kind: KindSigned, Card: Single},
	AttrDef{ID: pinAttrEsyncFrequency, Name: "esync-frequency", Kind: KindU64, Card: Single},
	AttrDef{ID: pinAttrEsyncFrequencySupported, Name: "esync-frequency-supported", Kind: KindNested, Card: Multi, Sub: FreqRangeSchema},
	AttrDef{ID: pinAttrEsyncPulse, Name: "esync-pulse", Kind: KindU32, Card: Single},
	AttrDef{ID: pinAttrParentDevice, Name: "parent-device", Kind: KindNested, Card: Multi, Sub: ParentDeviceSchema},
	AttrDef{ID: pinAttrParentPin, Name: "parent-pin", Kind: KindNested, Card: Multi, Sub: ParentPinSchema},
	AttrDef{ID: pinAttrReferenceSync, Name: "reference-sync", Kind: KindNested, Card: Multi, Sub: ReferenceSyncSchema},
	AttrDef{ID: pinAttrDirection, Name: "direction", Kind: KindU32, Card: Single},
	AttrDef{ID: pinAttrPrio, Name: "prio", Kind: KindU32, Card: Single},
	AttrDef{ID: pinAttrState, Name: "state", Kind: KindU32, Card: Single},
)
