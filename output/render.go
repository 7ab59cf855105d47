package output

import (
	"fmt"

	"github.com/orosp/dpll/dpll"
)

// RenderDevices renders a dump reply: a named "device" array of elements
// (§6.3). Call Finish() once after this returns.
func RenderDevices(s Sink, devices []*dpll.Device) {
	s.OpenArray("device")
	for _, d := range devices {
		renderDevice(s, d, "")
	}
	s.CloseArray()
}

// RenderDevice renders a single-result reply: one object, no array
// wrapper.
func RenderDevice(s Sink, d *dpll.Device) {
	renderDevice(s, d, "")
}

func renderDevice(s Sink, d *dpll.Device, kind string) {
	id := d.ID
	s.OpenObject("device", &id)
	if kind != "" {
		s.FieldStr("kind", kind)
	}
	s.FieldU("id", uint64(d.ID))
	if d.ModuleName != "" {
		s.FieldStr("module-name", d.ModuleName)
	}
	if d.Mode != "" {
		s.FieldStr("mode", d.Mode)
	}
	if len(d.ModeSupported) > 0 {
		s.OpenArray("mode-supported")
		for _, m := range d.ModeSupported {
			s.FieldStr("mode-supported", m)
		}
		s.CloseArray()
	}
	s.FieldHex("clock-id", d.ClockID)
	if d.Type != "" {
		s.FieldStr("type", d.Type)
	}
	if d.LockStatus != "" {
		s.FieldStr("lock-status", d.LockStatus)
	}
	if d.LockStatusError != "" {
		s.FieldStr("lock-status-error", d.LockStatusError)
	}
	if len(d.ClockQualityLevel) > 0 {
		s.OpenArray("clock-quality-level")
		for _, q := range d.ClockQualityLevel {
			s.FieldStr("clock-quality-level", q)
		}
		s.CloseArray()
	}
	if d.Temp != nil {
		// Render divides milli-degrees by 1000, per §3: "DD.mmm C".
		milli := int64(*d.Temp)
		sign := ""
		if milli < 0 {
			sign = "-"
			milli = -milli
		}
		s.FieldStr("temp", fmt.Sprintf("%s%d.%03d C", sign, milli/1000, milli%1000))
	}
	if d.PhaseOffsetMonitor != "" {
		s.FieldStr("phase-offset-monitor", d.PhaseOffsetMonitor)
	}
	s.FieldU("phase-offset-avg-factor", uint64(d.PhaseOffsetAvgFactor))
	s.CloseObject()
}

// RenderPins renders a dump reply of pins.
func RenderPins(s Sink, pins []*dpll.Pin) {
	s.OpenArray("pin")
	for _, p := range pins {
		renderPin(s, p, "")
	}
	s.CloseArray()
}

// RenderPin renders a single-result pin reply.
func RenderPin(s Sink, p *dpll.Pin) {
	renderPin(s, p, "")
}

func renderPin(s Sink, p *dpll.Pin, kind string) {
	id := p.ID
	s.OpenObject("pin", &id)
	if kind != "" {
		s.FieldStr("kind", kind)
	}
	s.FieldU("id", uint64(p.ID))
	if p.ModuleName != "" {
		s.FieldStr("module-name", p.ModuleName)
	}
	s.FieldHex("clock-id", p.ClockID)
	if p.BoardLabel != "" {
		s.FieldStr("board-label", p.BoardLabel)
	}
	if p.PanelLabel != "" {
		s.FieldStr("panel-label", p.PanelLabel)
	}
	if p.PackageLabel != "" {
		s.FieldStr("package-label", p.PackageLabel)
	}
	if p.Type != "" {
		s.FieldStr("type", p.Type)
	}
	s.FieldU("frequency", p.Frequency)
	renderFreqRanges(s, "frequency-supported", p.FrequencySupported)
	if len(p.Capabilities) > 0 {
		s.OpenArray("capabilities")
		for _, c := range p.Capabilities {
			s.FieldStr("capabilities", c)
		}
		s.CloseArray()
	}
	if p.PhaseAdjustMin != nil {
		s.FieldS("phase-adjust-min", int64(*p.PhaseAdjustMin))
	}
	if p.PhaseAdjustMax != nil {
		s.FieldS("phase-adjust-max", int64(*p.PhaseAdjustMax))
	}
	if p.PhaseAdjustGran != nil {
		s.FieldS("phase-adjust-gran", int64(*p.PhaseAdjustGran))
	}
	if p.PhaseAdjust != nil {
		s.FieldS("phase-adjust", int64(*p.PhaseAdjust))
	}
	if p.FractionalFrequencyOffset != nil {
		s.FieldS("fractional-frequency-offset", *p.FractionalFrequencyOffset)
	}
	s.FieldU("esync-frequency", p.EsyncFrequency)
	renderFreqRanges(s, "esync-frequency-supported", p.EsyncFrequencySupported)
	s.FieldU("esync-pulse", uint64(p.EsyncPulse))
	renderParentDevices(s, p.ParentDevice)
	renderParentPins(s, p.ParentPin)
	renderReferenceSyncs(s, p.ReferenceSync)
	s.CloseObject()
}

func renderFreqRanges(s Sink, name string, ranges []dpll.FreqRange) {
	if len(ranges) == 0 {
		return
	}
	s.OpenArray(name)
	for _, r := range ranges {
		s.OpenObject("frequency-range", nil)
		if r.Min != nil {
			s.FieldU("min", *r.Min)
		}
		if r.Max != nil {
			s.FieldU("max", *r.Max)
		}
		s.CloseObject()
	}
	s.CloseArray()
}

func renderParentDevices(s Sink, entries []dpll.ParentDevice) {
	if len(entries) == 0 {
		return
	}
	s.OpenArray("parent-device")
	for _, e := range entries {
		s.OpenObject("parent-device", nil)
		s.FieldU("parent-id", uint64(e.ParentID))
		if e.Direction != nil {
			s.FieldStr("direction", *e.Direction)
		}
		if e.Prio != nil {
			s.FieldU("prio", uint64(*e.Prio))
		}
		if e.State != nil {
			s.FieldStr("state", *e.State)
		}
		if e.PhaseOffset != nil {
			s.FieldS("phase-offset", *e.PhaseOffset)
		}
		s.CloseObject()
	}
	s.CloseArray()
}

func renderParentPins(s Sink, entries []dpll.ParentPin) {
	if len(entries) == 0 {
		return
	}
	s.OpenArray("parent-pin")
	for _, e := range entries {
		s.OpenObject("parent-pin", nil)
		s.FieldU("parent-id", uint64(e.ParentID))
		if e.State != nil {
			s.FieldStr("state", *e.State)
		}
		s.CloseObject()
	}
	s.CloseArray()
}

func renderReferenceSyncs(s Sink, entries []dpll.ReferenceSync) {
	if len(entries) == 0 {
		return
	}
	s.OpenArray("reference-sync")
	for _, e := range entries {
		s.OpenObject("reference-sync", nil)
		s.FieldU("pin-id", uint64(e.PinID))
		if e.State != nil {
			s.FieldStr("state", *e.State)
		}
		s.CloseObject()
	}
	s.CloseArray()
}

// RenderEvent renders a Notification Event, prefixed with its kind tag
// (§4.10): "kind" is rendered as the first field of the entity object,
// since the abstract sink has no primitive beyond out_open_object/
// out_field_*.
func RenderEvent(s Sink, ev dpll.Event) {
	tag := ev.Kind.Tag()
	switch {
	case ev.Device != nil:
		renderDevice(s, ev.Device, tag)
	case ev.Pin != nil:
		renderPin(s, ev.Pin, tag)
	}
}
