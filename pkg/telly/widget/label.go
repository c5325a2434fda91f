package widget

import (
	"github.com/BrandonKowalski/telly/pkg/telly/constants"
	"github.com/BrandonKowalski/telly/pkg/telly/device"
)

// Localizer resolves message ids to display text.
type Localizer interface {
	Localize(messageID string, data map[string]any) string
}

// Label displays a line of text. The text is either literal or a message id
// resolved through the application's Localizer at render time.
type Label struct {
	*Base

	text      string
	messageID string
	data      map[string]any
}

// NewLabel creates a label with literal text.
func NewLabel(id, text string) *Label {
	l := &Label{Base: NewBase(id), text: text}
	l.Extend(l)
	l.AddClass(constants.ClassLabel)
	return l
}

// NewLocalizedLabel creates a label whose text is looked up by message id.
func NewLocalizedLabel(id, messageID string, data map[string]any) *Label {
	l := NewLabel(id, messageID)
	l.messageID = messageID
	l.data = data
	return l
}

// Text returns the text as it is (or would be) displayed.
func (l *Label) Text() string {
	if l.messageID == "" {
		return l.text
	}
	if app := l.Application(); app != nil {
		return app.Localize(l.messageID, l.data)
	}
	return l.messageID
}

// SetText replaces the label text, dropping any message id.
func (l *Label) SetText(text string) {
	l.text = text
	l.messageID = ""
	l.data = nil
	if l.output != nil && l.device != nil {
		l.device.SetElementContent(l.output, text)
	}
}

func (l *Label) Render(d device.Device) *device.Element {
	if l.output == nil {
		l.setOutput(d.CreateLabel(l.id, l.classes, l.Text()), d)
	} else {
		d.SetElementContent(l.output, l.Text())
	}
	return l.output
}

// Image displays a picture, typically an SVG icon.
type Image struct {
	*Base

	src  string
	size device.Size
}

// NewImage creates an image widget.
func NewImage(id, src string, size device.Size) *Image {
	img := &Image{Base: NewBase(id), src: src, size: size}
	img.Extend(img)
	img.AddClass(constants.ClassImage)
	return img
}

func (img *Image) Src() string {
	return img.src
}

// SetSize resizes the image and its output element.
func (img *Image) SetSize(size device.Size) {
	img.size = size
	if img.output != nil && img.device != nil {
		img.device.SetElementSize(img.output, size)
	}
}

func (img *Image) Render(d device.Device) *device.Element {
	if img.output == nil {
		img.setOutput(d.CreateImage(img.id, img.classes, img.src, img.size), d)
	}
	return img.output
}
