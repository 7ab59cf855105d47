package dpll

// DecodeDevice runs the full Wire Decoder + Aggregator + Nested Record
// Parser + Enum Codec pipeline (§4.4–§4.7) over one DEVICE_GET/DEVICE_ID_GET
// reply body and produces the single coherent Device the renderer consumes.
//
// Per the §3 invariant, a reply without an id is not a valid Device; the
// caller (a dump loop or a single-reply executor) decides whether that's
// soft (skip this element) or hard (abort the operation).
func DecodeDevice(data []byte) (*Device, error) {
	ctx, err := decodeMessage(DeviceSchema, data)
	if err != nil {
		return nil, err
	}

	id, ok := ctx.u32(devAttrID)
	if !ok {
		return nil, &DecodeError{Schema: "device", Attr: "id", Reason: "missing required field"}
	}

	d := &Device{ID: id}
	if v, ok := ctx.str(devAttrModuleName); ok {
		d.ModuleName = v
	}
	if v, ok := ctx.u32(devAttrMode); ok {
		d.Mode = ModeEnum.Decode(v)
	}
	d.ModeSupported = decodeEnumList(ctx.multiBodies(devAttrModeSupported), ModeEnum)
	if v, ok := ctx.u64(devAttrClockID); ok {
		d.ClockID = v
	}
	if v, ok := ctx.u32(devAttrType); ok {
		d.Type = DeviceTypeEnum.Decode(v)
	}
	if v, ok := ctx.u32(devAttrLockStatus); ok {
		d.LockStatus = LockStatusEnum.Decode(v)
	}
	if v, ok := ctx.u32(devAttrLockStatusError); ok {
		d.LockStatusError = LockStatusErrorEnum.Decode(v)
	}
	d.ClockQualityLevel = decodeEnumList(ctx.multiBodies(devAttrClockQualityLevel), ClockQualityLevelEnum)
	if v, ok := ctx.s32(devAttrTemp); ok {
		d.Temp = &v
	}
	if v, ok := ctx.u32(devAttrPhaseOffsetMonitor); ok {
		d.PhaseOffsetMonitor = PhaseOffsetMonitorEnum.Decode(v)
	}
	if v, ok := ctx.u32(devAttrPhaseOffsetAvgFactor); ok {
		d.PhaseOffsetAvgFactor = v
	}

	return d, nil
}

// DecodePin runs the same pipeline for one PIN_GET/PIN_ID_GET reply body.
func DecodePin(data []byte) (*Pin, error) {
	ctx, err := decodeMessage(PinSchema, data)
	if err != nil {
		return nil, err
	}

	id, ok := ctx.u32(pinAttrID)
	if !ok {
		return nil, &DecodeError{Schema: "pin", Attr: "id", Reason: "missing required field"}
	}

	p := &Pin{ID: id}
	if v, ok := ctx.str(pinAttrModuleName); ok {
		p.ModuleName = v
	}
	if v, ok := ctx.u64(pinAttrClockID); ok {
		p.ClockID = v
	}
	if v, ok := ctx.str(pinAttrBoardLabel); ok {
		p.BoardLabel = v
	}
	if v, ok := ctx.str(pinAttrPanelLabel); ok {
		p.PanelLabel = v
	}
	if v, ok := ctx.str(pinAttrPackageLabel); ok {
		p.PackageLabel = v
	}
	if v, ok := ctx.u32(pinAttrType); ok {
		p.Type = PinTypeEnum.Decode(v)
	}
	if v, ok := ctx.u64(pinAttrFrequency); ok {
		p.Frequency = v
	}
	p.FrequencySupported, _ = parseFreqRangeList(ctx.multiBodies(pinAttrFrequencySupported))
	if v, ok := ctx.u32(pinAttrCapabilities); ok {
		p.Capabilities = DecodeCapabilities(v)
	}
	if v, ok := ctx.s32(pinAttrPhaseAdjustMin); ok {
		p.PhaseAdjustMin = &v
	}
	if v, ok := ctx.s32(pinAttrPhaseAdjustMax); ok {
		p.PhaseAdjustMax = &v
	}
	if v, ok := ctx.s32(pinAttrPhaseAdjustGran); ok {
		p.PhaseAdjustGran = &v
	}
	if v, ok := ctx.s32(pinAttrPhaseAdjust); ok {
		p.PhaseAdjust = &v
	}
	if v, ok := ctx.signed(pinAttrFractionalFreqOffset); ok {
		p.FractionalFrequencyOffset = &v
	}
	if v, ok := ctx.u64(pinAttrEsyncFrequency); ok {
		p.EsyncFrequency = v
	}
	p.EsyncFrequencySupported, _ = parseFreqRangeList(ctx.multiBodies(pinAttrEsyncFrequencySupported))
	if v, ok := ctx.u32(pinAttrEsyncPulse); ok {
		p.EsyncPulse = v
	}
	p.ParentDevice, _ = parseParentDeviceList(ctx.multiBodies(pinAttrParentDevice))
	p.ParentPin, _ = parseParentPinList(ctx.multiBodies(pinAttrParentPin))
	p.ReferenceSync, _ = parseReferenceSyncList(ctx.multiBodies(pinAttrReferenceSync))

	return p, nil
}
