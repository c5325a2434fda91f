package demo

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/telly/pkg/telly/constants"
	"github.com/BrandonKowalski/telly/pkg/telly/device"
	"github.com/BrandonKowalski/telly/pkg/telly/i18n"
	"github.com/BrandonKowalski/telly/pkg/telly/module"
	"github.com/BrandonKowalski/telly/pkg/telly/widget"
)

type harness struct {
	*Demo
	app     *widget.Application
	surface *device.Surface
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	surface := device.NewSurface(device.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	translator, err := i18n.New("en")
	require.NoError(t, err)

	catalog := module.New()
	app := widget.NewApplication(surface, widget.WithLoader(catalog), widget.WithLocalizer(translator))
	d := New(app, translator, catalog, 0)
	d.Start()

	h := &harness{Demo: d, app: app, surface: surface}
	h.runPosted(t)
	return h
}

// runPosted completes one module load.
func (h *harness) runPosted(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.app.Loop().RunOne(ctx))
}

func (h *harness) focussed() string {
	if w := h.app.FocussedWidget(); w != nil {
		return w.ID()
	}
	return ""
}

func (h *harness) press(keys ...constants.VirtualButton) {
	for _, k := range keys {
		h.app.HandleKey(k)
	}
}

func TestStartShowsHome(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, ModuleHome, h.Content().CurrentModule())
	assert.Equal(t, "title_big_buck_bunny", h.focussed())
	assert.Equal(t, "Home", h.surface.Root().Find("app_title").Text)
}

func TestOpenTitleAndBack(t *testing.T) {
	h := newHarness(t)

	h.press(constants.VirtualButtonDown)
	assert.Equal(t, "title_sintel", h.focussed())

	h.press(constants.VirtualButtonSelect)
	h.runPosted(t)
	require.Equal(t, ModuleDetail, h.Content().CurrentModule())
	assert.Equal(t, "Sintel", h.surface.Root().Find("detail_heading").Text)
	assert.Equal(t, "detail_play", h.focussed())

	h.press(constants.VirtualButtonSelect)
	assert.Equal(t, "media/sintel.mp4", h.surface.Media())

	h.press(constants.VirtualButtonBack)
	assert.Equal(t, ModuleHome, h.Content().CurrentModule())
	assert.Equal(t, "title_sintel", h.focussed())
	assert.Empty(t, h.surface.Media(), "leaving the detail screen stops playback")
	assert.Zero(t, h.Content().HistoryLen())
}

func TestDetailBackButton(t *testing.T) {
	h := newHarness(t)

	h.press(constants.VirtualButtonSelect)
	h.runPosted(t)
	require.Equal(t, ModuleDetail, h.Content().CurrentModule())

	h.press(constants.VirtualButtonRight)
	assert.Equal(t, "detail_back", h.focussed())
	h.press(constants.VirtualButtonSelect)
	assert.Equal(t, ModuleHome, h.Content().CurrentModule())
	assert.Equal(t, "title_big_buck_bunny", h.focussed())
}

func TestSettingsSwitchesLanguage(t *testing.T) {
	h := newHarness(t)

	h.press(constants.VirtualButtonUp)
	require.Equal(t, "settings_button", h.focussed())

	h.press(constants.VirtualButtonSelect)
	h.runPosted(t)
	require.Equal(t, ModuleSettings, h.Content().CurrentModule())
	assert.True(t, h.Content().Content().IsModal())
	assert.Equal(t, "language_en", h.focussed())

	h.press(constants.VirtualButtonRight, constants.VirtualButtonSelect)
	assert.Equal(t, "language_de", h.focussed())
	assert.Equal(t, "Start", h.surface.Root().Find("app_title").Text)

	h.press(constants.VirtualButtonBack)
	assert.Equal(t, ModuleHome, h.Content().CurrentModule())
	assert.Equal(t, "settings_button", h.focussed())
}

func TestSettingsCloseButton(t *testing.T) {
	h := newHarness(t)

	h.OpenSettings()
	h.runPosted(t)
	h.press(constants.VirtualButtonDown)
	require.Equal(t, "settings_close", h.focussed())

	h.press(constants.VirtualButtonSelect)
	assert.Equal(t, ModuleHome, h.Content().CurrentModule())
	assert.Equal(t, "settings_button", h.focussed())
}
