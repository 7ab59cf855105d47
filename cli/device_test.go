package cli

import (
	"errors"
	"testing"

	"github.com/orosp/dpll/dpll"
)

func TestParseDeviceShowWithID(t *testing.T) {
	body, dump, err := parseDeviceShow(NewCursor([]string{"id", "7"}))
	if err != nil {
		t.Fatalf("parseDeviceShow() error: %v", err)
	}
	if dump {
		t.Fatal("parseDeviceShow() with an id set dump=true, want the single form")
	}
	d, err := dpll.DecodeDevice(body)
	if err != nil {
		t.Fatalf("DecodeDevice() of the built request: %v", err)
	}
	if d.ID != 7 {
		t.Fatalf("decoded id = %d, want 7", d.ID)
	}
}

func TestParseDeviceShowWithoutIDIsDump(t *testing.T) {
	_, dump, err := parseDeviceShow(NewCursor(nil))
	if err != nil {
		t.Fatalf("parseDeviceShow() error: %v", err)
	}
	if !dump {
		t.Fatal("parseDeviceShow() with no id set dump=false, want the dump form")
	}
}

func TestParseDeviceShowUnknownKeywordIsUsageError(t *testing.T) {
	_, _, err := parseDeviceShow(NewCursor([]string{"bogus", "1"}))
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("parseDeviceShow(bogus) error = %v, want *UsageError", err)
	}
}

func TestParseDeviceSetRequiresID(t *testing.T) {
	_, err := parseDeviceSet(NewCursor([]string{"phase-offset-avg-factor", "3"}))
	var merr *MissingArgument
	if !errors.As(err, &merr) {
		t.Fatalf("parseDeviceSet() without id error = %v, want *MissingArgument", err)
	}
	if merr.Keyword != "id" {
		t.Fatalf("MissingArgument.Keyword = %q, want \"id\"", merr.Keyword)
	}
}

func TestParseDeviceSetKeywordWithNoValue(t *testing.T) {
	_, err := parseDeviceSet(NewCursor([]string{"id", "1", "phase-offset-avg-factor"}))
	var merr *MissingArgument
	if !errors.As(err, &merr) {
		t.Fatalf("error = %v, want *MissingArgument", err)
	}
	if merr.Keyword != "phase-offset-avg-factor" {
		t.Fatalf("MissingArgument.Keyword = %q, want \"phase-offset-avg-factor\"", merr.Keyword)
	}
}

func TestParseDeviceIDGetInvalidEnum(t *testing.T) {
	_, err := parseDeviceIDGet(NewCursor([]string{"type", "neither-a-nor-b"}))
	var ierr *InvalidArgument
	if !errors.As(err, &ierr) {
		t.Fatalf("error = %v, want *InvalidArgument", err)
	}
}

func TestParseDeviceSetBuildsPhaseOffsetMonitor(t *testing.T) {
	body, err := parseDeviceSet(NewCursor([]string{"id", "2", "phase-offset-monitor", "true"}))
	if err != nil {
		t.Fatalf("parseDeviceSet() error: %v", err)
	}
	d, err := dpll.DecodeDevice(body)
	if err != nil {
		t.Fatalf("DecodeDevice(): %v", err)
	}
	if d.ID != 2 {
		t.Fatalf("id = %d, want 2", d.ID)
	}
	if d.PhaseOffsetMonitor != "enabled" {
		t.Fatalf("phase-offset-monitor = %q, want \"enabled\"", d.PhaseOffsetMonitor)
	}
}

func TestParseDeviceIDGetOutOfRangeInteger(t *testing.T) {
	_, err := parseDeviceIDGet(NewCursor([]string{"clock-id", "18446744073709551616"}))
	var ierr *InvalidArgument
	if !errors.As(err, &ierr) {
		t.Fatalf("error = %v, want *InvalidArgument", err)
	}
}
