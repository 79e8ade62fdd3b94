package output

import (
	"github.com/charmbracelet/lipgloss"
)

// IndicatorSize selects the visual footprint of the loading indicator.
type IndicatorSize string

// Supported indicator sizes.
const (
	SizeSmall  IndicatorSize = "small"
	SizeMedium IndicatorSize = "medium"
	SizeLarge  IndicatorSize = "large"
)

// caption shown beneath the glyph when captions are enabled.
const indicatorCaption = "Loading…"

// IndicatorOptions configures an Indicator. The zero value renders
// identically to {Size: SizeMedium, ShowCaption: true}.
type IndicatorOptions struct {
	// Size selects the visual footprint. Empty or unknown values fall back
	// to SizeMedium.
	Size IndicatorSize

	// ShowCaption controls the "Loading…" label. Nil means true.
	ShowCaption *bool
}

// Indicator renders a continuously looping rotation animation with an
// optional pulsing caption. It is a pure function of its configuration and
// a frame index: no state, no side effects.
type Indicator struct {
	size    IndicatorSize
	caption bool
}

// NewIndicator builds an Indicator, applying defaults for omitted options.
func NewIndicator(opts IndicatorOptions) Indicator {
	size := opts.Size
	switch size {
	case SizeSmall, SizeMedium, SizeLarge:
	default:
		size = SizeMedium
	}

	caption := true
	if opts.ShowCaption != nil {
		caption = *opts.ShowCaption
	}

	return Indicator{size: size, caption: caption}
}

// Size returns the resolved indicator size.
func (i Indicator) Size() IndicatorSize {
	return i.size
}

// ShowCaption reports whether the caption is rendered.
func (i Indicator) ShowCaption() bool {
	return i.caption
}

// rotation frames shared by all sizes; size changes the footprint, not the
// animation.
var indicatorFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// glyphStyle returns the style giving each size its fixed footprint.
func (i Indicator) glyphStyle() lipgloss.Style {
	switch i.size {
	case SizeSmall:
		return lipgloss.NewStyle().Foreground(ColorCyan)
	case SizeLarge:
		return lipgloss.NewStyle().Foreground(ColorCyan).Bold(true).Padding(0, 2)
	default:
		return lipgloss.NewStyle().Foreground(ColorCyan).Padding(0, 1)
	}
}

// Frames returns the number of frames in one full rotation.
func (i Indicator) Frames() int {
	return len(indicatorFrames)
}

// FrameGlyphs returns the raw animation frames, for callers that drive the
// animation themselves (e.g. the spinner wrapper).
func (i Indicator) FrameGlyphs() []string {
	frames := make([]string, len(indicatorFrames))
	copy(frames, indicatorFrames)
	return frames
}

// View renders the indicator at the given frame index. Frame indices wrap,
// so callers can pass a monotonically increasing counter.
func (i Indicator) View(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	glyph := i.glyphStyle().Render(indicatorFrames[frame%len(indicatorFrames)])

	if !i.caption {
		return glyph
	}

	// The caption pulses by alternating between dim and plain across frames.
	captionStyle := lipgloss.NewStyle()
	if frame%2 == 0 {
		captionStyle = StyleDim
	}

	return lipgloss.JoinVertical(lipgloss.Center, glyph, captionStyle.Render(indicatorCaption))
}
