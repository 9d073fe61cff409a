package infra

import (
	"errors"
	"testing"
)

func TestNewLink_RejectsWirelessEndpoint(t *testing.T) {
	_, err := NewLink("a", "b", 0, 1000, 0.01, true, false)
	if !errors.Is(err, ErrLinkIsWirelessEndpoint) {
		t.Errorf("NewLink(wireless src) error = %v, want ErrLinkIsWirelessEndpoint", err)
	}
	_, err = NewLink("a", "b", 0, 1000, 0.01, false, true)
	if !errors.Is(err, ErrLinkIsWirelessEndpoint) {
		t.Errorf("NewLink(wireless dst) error = %v, want ErrLinkIsWirelessEndpoint", err)
	}
}

func TestLink_CanReserve(t *testing.T) {
	l, err := NewLink("a", "b", 0, 1000, 0.01, false, false)
	if err != nil {
		t.Fatalf("NewLink error: %v", err)
	}
	if !l.CanReserve(500) {
		t.Errorf("CanReserve(500) on fresh link = false, want true")
	}
	if l.CanReserve(1500) {
		t.Errorf("CanReserve(1500) on fresh link = true, want false")
	}
}

func TestLink_BandwidthUtilization(t *testing.T) {
	l, _ := NewLink("a", "b", 0, 1000, 0.01, false, false)
	if got := l.BandwidthUtilization(); got != 0 {
		t.Errorf("BandwidthUtilization on fresh link = %v, want 0", got)
	}
	flow := NewDataFlow([]*Link{l}, 400)
	if err := flow.Place(); err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if got := l.BandwidthUtilization(); got != 0.4 {
		t.Errorf("BandwidthUtilization after reserving 400/1000 = %v, want 0.4", got)
	}
}

func TestLink_Reset(t *testing.T) {
	l, _ := NewLink("a", "b", 0, 1000, 0.01, false, false)
	flow := NewDataFlow([]*Link{l}, 400)
	flow.Place()
	l.Reset()
	if l.FreeBandwidth != l.MaxBandwidth {
		t.Errorf("FreeBandwidth after Reset = %v, want %v", l.FreeBandwidth, l.MaxBandwidth)
	}
}
