package dpll

// parseFreqRange expands one frequency_supported / esync_frequency_supported
// entry into its typed sub-record (§4.6).
func parseFreqRange(body []byte) (FreqRange, error) {
	ctx, err := decodeMessage(FreqRangeSchema, body)
	if err != nil {
		return FreqRange{}, err
	}
	var r FreqRange
	if v, ok := ctx.u64(freqAttrMin); ok {
		r.Min = &v
	}
	if v, ok := ctx.u64(freqAttrMax); ok {
		r.Max = &v
	}
	return r, nil
}

func parseFreqRangeList(bodies [][]byte) ([]FreqRange, []error) {
	out := make([]FreqRange, 0, len(bodies))
	var errs []error
	for _, b := range bodies {
		r, err := parseFreqRange(b)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, r)
	}
	return out, errs
}

// parseParentDevice expands one parent_device entry (§4.6). parent_id is
// the one required field; everything else is optional and left nil when
// absent, matching the "direction:enum?, prio:u32?, state:enum?,
// phase_offset:s64?" shape of the data model.
func parseParentDevice(body []byte) (ParentDevice, error) {
	ctx, err := decodeMessage(ParentDeviceSchema, body)
	if err != nil {
		return ParentDevice{}, err
	}
	var pd ParentDevice
	if v, ok := ctx.u32(parentDeviceAttrParentID); ok {
		pd.ParentID = v
	} else {
		return ParentDevice{}, &DecodeError{Schema: "parent-device", Attr: "parent-id", Reason: "missing required field"}
	}
	if v, ok := ctx.u32(parentDeviceAttrDirection); ok {
		label := PinDirectionEnum.Decode(v)
		pd.Direction = &label
	}
	if v, ok := ctx.u32(parentDeviceAttrPrio); ok {
		pd.Prio = &v
	}
	if v, ok := ctx.u32(parentDeviceAttrState); ok {
		label := PinStateEnum.Decode(v)
		pd.State = &label
	}
	if v, ok := ctx.signed(parentDeviceAttrPhaseOffset); ok {
		pd.PhaseOffset = &v
	}
	return pd, nil
}

func parseParentDeviceList(bodies [][]byte) ([]ParentDevice, []error) {
	out := make([]ParentDevice, 0, len(bodies))
	var errs []error
	for _, b := range bodies {
		pd, err := parseParentDevice(b)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, pd)
	}
	return out, errs
}

// parseParentPin expands one parent_pin entry.
func parseParentPin(body []byte) (ParentPin, error) {
	ctx, err := decodeMessage(ParentPinSchema, body)
	if err != nil {
		return ParentPin{}, err
	}
	var pp ParentPin
	if v, ok := ctx.u32(parentPinAttrParentID); ok {
		pp.ParentID = v
	} else {
		return ParentPin{}, &DecodeError{Schema: "parent-pin", Attr: "parent-id", Reason: "missing required field"}
	}
	if v, ok := ctx.u32(parentPinAttrState); ok {
		label := PinStateEnum.Decode(v)
		pp.State = &label
	}
	return pp, nil
}

func parseParentPinList(bodies [][]byte) ([]ParentPin, []error) {
	out := make([]ParentPin, 0, len(bodies))
	var errs []error
	for _, b := range bodies {
		pp, err := parseParentPin(b)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, pp)
	}
	return out, errs
}

// parseReferenceSync expands one reference_sync entry.
func parseReferenceSync(body []byte) (ReferenceSync, error) {
	ctx, err := decodeMessage(ReferenceSyncSchema, body)
	if err != nil {
		return ReferenceSync{}, err
	}
	var rs ReferenceSync
	if v, ok := ctx.u32(referenceSyncAttrPinID); ok {
		rs.PinID = v
	} else {
		return ReferenceSync{}, &DecodeError{Schema: "reference-sync", Attr: "pin-id", Reason: "missing required field"}
	}
	if v, ok := ctx.u32(referenceSyncAttrState); ok {
		label := PinStateEnum.Decode(v)
		rs.State = &label
	}
	return rs, nil
}

func parseReferenceSyncList(bodies [][]byte) ([]ReferenceSync, []error) {
	out := make([]ReferenceSync, 0, len(bodies))
	var errs []error
	for _, b := range bodies {
		rs, err := parseReferenceSync(b)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, rs)
	}
	return out, errs
}

// decodeEnumList resolves a multi-attribute's raw u32 bodies through an Enum,
// preserving wire order (§3 invariant: "order in the emitted sequence
// follows wire order").
func decodeEnumList(bodies [][]byte, enum *Enum) []string {
	out := make([]string, 0, len(bodies))
	for _, b := range bodies {
		if len(b) < 4 {
			continue
		}
		code := nativeUint32(b)
		out = append(out, enum.Decode(code))
	}
	return out
}
