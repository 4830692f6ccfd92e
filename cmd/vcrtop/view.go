package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"vcrfx/pkg/vcr"
)

const barWidth = 30

var (
	labelStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	valueStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	hotStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	okStyle    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

var qualityNames = [...]string{"LOW", "MEDIUM", "HIGH"}
var modeNames = [...]string{"VCR", "CCTV"}

// bar renders a fraction as a fixed-width gauge
func bar(fraction float64, width int) string {
	fraction = max(0, min(1, fraction))
	filled := int(fraction*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// activeEvents lists the running one-shots and timeline events
func activeEvents(s vcr.Snapshot) []string {
	var events []string
	if s.Tracking {
		events = append(events, "tracking")
	}
	if s.Jitter > 0 {
		events = append(events, "jitter")
	}
	if s.Distortion {
		events = append(events, "distortion")
	}
	if s.CCTV > 0 {
		events = append(events, "cctv")
	}
	if s.Static > 0 {
		events = append(events, "static")
	}
	if s.TapeDamage > 0 {
		events = append(events, "tape damage")
	}
	if s.FrameDrop {
		events = append(events, "frame drop")
	}
	return events
}

func (m *Monitor) text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		m.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func (m *Monitor) row(y int, label, value string, style tcell.Style) {
	x := m.text(2, y, fmt.Sprintf("%-14s", label), labelStyle)
	m.text(x, y, value, style)
}

func (m *Monitor) draw() {
	m.screen.Clear()
	s := m.state

	title := "vcrtop " + m.addr
	m.text(2, 0, title, valueStyle.Bold(true))
	if m.connected {
		m.text(len(title)+4, 0, "LIVE", okStyle)
	} else {
		m.text(len(title)+4, 0, "OFFLINE", hotStyle)
	}

	enabled := "off"
	if s.Enabled {
		enabled = "on"
	}
	m.row(2, "overlay", enabled, valueStyle)
	m.row(3, "mode", modeNames[vcr.ClampMode(s.Mode)], valueStyle)
	m.row(4, "quality", qualityNames[vcr.ClampQuality(s.Quality)], valueStyle)
	m.row(5, "frames", fmt.Sprintf("%d  (%dx%d)", s.FrameCount, s.Width, s.Height), valueStyle)
	m.row(6, "phase", fmt.Sprintf("%s %5.1fs", bar(s.Phase/50, barWidth), s.Phase), valueStyle)

	battStyle := valueStyle
	if s.Battery < 0.2 {
		battStyle = hotStyle
	}
	m.row(7, "battery", fmt.Sprintf("%s %3.0f%%", bar(float64(s.Battery), barWidth), s.Battery*100), battStyle)
	m.row(8, "desaturation", fmt.Sprintf("%.2f", s.Desaturation), valueStyle)
	m.row(9, "noise dots", fmt.Sprintf("%d", s.DotCount), valueStyle)

	events := activeEvents(s)
	if len(events) == 0 {
		m.row(11, "events", "-", labelStyle)
	} else {
		m.row(11, "events", strings.Join(events, ", "), hotStyle)
	}

	m.text(2, 13, "t toggle  q/Q quality  m mode  d c s x triggers  r reset  [ ] battery  Esc quit", labelStyle)
	m.text(2, 14, m.status, labelStyle)

	m.screen.Show()
}
