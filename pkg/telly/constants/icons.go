package constants

// Glyphs drawn by the text based backends next to widget state.
const (
	FocusMarker    = "▶"   // Prefix of the focussed button
	ActiveMarker   = "•"   // Prefix of an active but unfocussed button
	InactiveMarker = " "   // Prefix of every other button
	ImageGlyph     = "▣"   // Placeholder for images on terminals
	MediaGlyph     = "♪"   // Shown while media is playing
	ModalGlyph     = "◆"   // Title decoration of modal components
	LoadingGlyph   = "…"   // Shown in an empty component container while loading
	EllipsisGlyph  = "..." // Truncation suffix for long labels
)
