package infra

import (
	"errors"
	"fmt"
)

// ErrLinkIsWirelessEndpoint is returned by NewLink when either endpoint is
// wireless-only; such endpoints may only be reached via a synthetic
// wireless hop, never a real Link.
var ErrLinkIsWirelessEndpoint = errors.New("infra: link endpoint is wireless-only")

// ErrInsufficientBandwidth is returned when a reservation cannot be
// satisfied by a link's remaining free bandwidth.
var ErrInsufficientBandwidth = errors.New("infra: insufficient free bandwidth")

// Link is a unidirectional, bandwidth-bounded channel between two named
// nodes. Key disambiguates parallel links between the same ordered pair.
type Link struct {
	Src           string
	Dst           string
	Key           int
	MaxBandwidth  float64
	FreeBandwidth float64
	BaseLatency   float64
	Distance      float64
	HasDistance   bool

	flows map[*DataFlow]struct{}
}

// NewLink constructs a Link, refusing construction when either endpoint is
// wireless-only (wirelessSrc/wirelessDst report the endpoints' WirelessOnly
// flags at construction time).
func NewLink(src, dst string, key int, maxBandwidth, baseLatency float64, wirelessSrc, wirelessDst bool) (*Link, error) {
	if wirelessSrc || wirelessDst {
		return nil, ErrLinkIsWirelessEndpoint
	}
	return &Link{
		Src:           src,
		Dst:           dst,
		Key:           key,
		MaxBandwidth:  maxBandwidth,
		FreeBandwidth: maxBandwidth,
		BaseLatency:   baseLatency,
		flows:         make(map[*DataFlow]struct{}),
	}, nil
}

func (l *Link) String() string {
	return fmt.Sprintf("%s --> %s (%.0f/%.0f) (%g)", l.Src, l.Dst, l.FreeBandwidth, l.MaxBandwidth, l.BaseLatency)
}

// CanReserve reports whether bitRate can currently be reserved.
func (l *Link) CanReserve(bitRate float64) bool {
	return l.FreeBandwidth >= bitRate
}

func (l *Link) reserve(flow *DataFlow) error {
	if !l.CanReserve(flow.BitRate) {
		return ErrInsufficientBandwidth
	}
	l.FreeBandwidth -= flow.BitRate
	l.flows[flow] = struct{}{}
	return nil
}

func (l *Link) release(flow *DataFlow) {
	if _, ok := l.flows[flow]; !ok {
		return
	}
	delete(l.flows, flow)
	l.FreeBandwidth += flow.BitRate
}

// BandwidthUtilization returns the fraction of MaxBandwidth currently
// reserved by active flows.
func (l *Link) BandwidthUtilization() float64 {
	if l.MaxBandwidth == 0 {
		return 0
	}
	return (l.MaxBandwidth - l.FreeBandwidth) / l.MaxBandwidth
}

// Reset restores the link to unreserved, flow-free state.
func (l *Link) Reset() {
	l.FreeBandwidth = l.MaxBandwidth
	l.flows = make(map[*DataFlow]struct{})
}
