// Package demo builds the screens of the telly demo: a home menu, a detail
// screen loaded per title, and a modal settings dialog that switches the
// display language.
package demo

import (
	"fmt"
	"time"

	"github.com/BrandonKowalski/telly/pkg/telly/device"
	"github.com/BrandonKowalski/telly/pkg/telly/i18n"
	"github.com/BrandonKowalski/telly/pkg/telly/module"
	"github.com/BrandonKowalski/telly/pkg/telly/widget"
)

// Module names.
const (
	ModuleHome     = "home"
	ModuleDetail   = "detail"
	ModuleSettings = "settings"
)

// Title is an entry of the home menu.
type Title struct {
	ID    string
	Name  string
	Media string
}

// Titles is the demo library.
var Titles = []Title{
	{ID: "big_buck_bunny", Name: "Big Buck Bunny", Media: "media/big_buck_bunny.mp4"},
	{ID: "sintel", Name: "Sintel", Media: "media/sintel.mp4"},
	{ID: "tears_of_steel", Name: "Tears of Steel", Media: "media/tears_of_steel.mp4"},
}

// Demo owns the widget tree of the demo application.
type Demo struct {
	app        *widget.Application
	translator *i18n.Translator
	catalog    *module.Catalog

	root    *widget.List
	header  *widget.List
	content *widget.ComponentContainer

	settingsButton *widget.Button
}

// New builds the demo tree on app. Modules resolve through catalog, which
// New fills in; latency delays every module load.
func New(app *widget.Application, translator *i18n.Translator, catalog *module.Catalog, latency time.Duration) *Demo {
	d := &Demo{app: app, translator: translator, catalog: catalog}

	catalog.
		Register(ModuleHome, d.newHome).
		Register(ModuleDetail, d.newDetail).
		Register(ModuleSettings, d.newSettings).
		WithLatency(latency)

	d.root = widget.NewList("root", widget.Vertical)
	d.header = widget.NewList("header", widget.Horizontal)
	d.header.AppendChildWidget(widget.NewImage("logo", "assets/logo.svg", device.Size{Width: 48, Height: 48}))
	d.header.AppendChildWidget(widget.NewLocalizedLabel("app_title", "home_title", nil))

	d.settingsButton = widget.NewButton("settings_button")
	d.settingsButton.AppendChildWidget(widget.NewLocalizedLabel("settings_button_label", "home_settings", nil))
	d.settingsButton.OnSelect(d.OpenSettings)
	d.header.AppendChildWidget(d.settingsButton)

	d.content = widget.NewComponentContainer("content", nil)
	d.content.AddEventListener(widget.EventAfterShow, func(*widget.Event) {
		d.root.SetActiveChildWidget(d.content)
	})

	d.root.AppendChildWidget(d.header)
	d.root.AppendChildWidget(d.content)
	return d
}

// Start attaches the tree to the application and shows the home screen.
func (d *Demo) Start() {
	d.app.SetRootWidget(d.root)
	d.content.Show(ModuleHome, widget.ShowOptions{})
}

// Content returns the container screens are shown in.
func (d *Demo) Content() *widget.ComponentContainer {
	return d.content
}

// OpenSettings shows the settings dialog in place of the current screen.
// Closing it returns focus to the settings button.
func (d *Demo) OpenSettings() {
	d.content.Show(ModuleSettings, widget.ShowOptions{
		KeepHistory: true,
		Focus:       d.settingsButton,
	})
}

// OpenTitle shows the detail screen for t, remembering the home screen.
func (d *Demo) OpenTitle(t Title, from *widget.Button) {
	d.content.Show(ModuleDetail, widget.ShowOptions{
		Args:        widget.Args{"id": t.ID, "title": t.Name, "media": t.Media},
		KeepHistory: true,
		Focus:       from,
	})
}

// SetLocale switches the display language and redraws the tree.
func (d *Demo) SetLocale(locale string) error {
	if err := d.translator.SetLocale(locale); err != nil {
		return err
	}
	d.root.Render(d.app.Device())
	return nil
}

func (d *Demo) newHome() *widget.Component {
	c := widget.NewComponent(ModuleHome)
	menu := widget.NewList("home_menu", widget.Vertical)

	for _, t := range Titles {
		b := widget.NewTextButton("title_"+t.ID, t.Name)
		b.OnSelect(func() { d.OpenTitle(t, b) })
		menu.AppendChildWidget(b)
	}

	c.AppendChildWidget(widget.NewLocalizedLabel("home_heading", "home_movies", nil))
	c.AppendChildWidget(menu)

	c.SetStateFunc(func() widget.State {
		if active := menu.ActiveChildWidget(); active != nil {
			return widget.State{"selected": active.ID()}
		}
		return nil
	})
	c.OnShow(func(_ widget.Args, state widget.State, fromBack bool) {
		if !fromBack {
			return
		}
		if id, ok := state["selected"].(string); ok {
			menu.SetActiveChildWidget(menu.ChildWidget(id))
		}
	})
	return c
}

func (d *Demo) newDetail() *widget.Component {
	c := widget.NewComponent(ModuleDetail)
	title := widget.NewLabel("detail_heading", "")
	status := widget.NewLabel("detail_status", "")

	actions := widget.NewList("detail_actions", widget.Horizontal)
	play := widget.NewButton("detail_play")
	play.AppendChildWidget(widget.NewLocalizedLabel("detail_play_label", "detail_play", nil))
	back := widget.NewButton("detail_back")
	back.AppendChildWidget(widget.NewLocalizedLabel("detail_back_label", "detail_back", nil))
	actions.AppendChildWidget(play)
	actions.AppendChildWidget(back)

	c.AppendChildWidget(title)
	c.AppendChildWidget(status)
	c.AppendChildWidget(actions)

	var media string
	c.OnShow(func(args widget.Args, _ widget.State, _ bool) {
		media, _ = args["media"].(string)
		title.SetText(d.app.Localize("detail_title", map[string]any{"Title": args["title"]}))
		status.SetText("")
		actions.SetActiveChildWidget(play)
	})
	c.OnHide(func() {
		d.app.Device().StopMedia()
	})

	play.OnSelect(func() {
		if err := d.app.Device().PlayMedia(media); err != nil {
			status.SetText(fmt.Sprintf("%v", err))
			d.app.Logger().Warn("Unable to play media", "src", media, "error", err)
		}
	})
	back.OnSelect(d.content.Back)
	return c
}

func (d *Demo) newSettings() *widget.Component {
	c := widget.NewComponent(ModuleSettings)
	c.SetModal(true)

	languages := widget.NewList("settings_languages", widget.Horizontal)
	for _, tag := range d.translator.Languages() {
		locale := tag.String()
		b := widget.NewTextButton("language_"+locale, locale)
		b.OnSelect(func() {
			if err := d.SetLocale(locale); err != nil {
				d.app.Logger().Warn("Unable to switch language", "locale", locale, "error", err)
			}
		})
		languages.AppendChildWidget(b)
	}

	closeButton := widget.NewButton("settings_close")
	closeButton.AppendChildWidget(widget.NewLocalizedLabel("settings_close_label", "settings_close", nil))
	closeButton.OnSelect(d.content.Back)

	body := widget.NewList("settings_body", widget.Vertical)
	body.AppendChildWidget(languages)
	body.AppendChildWidget(closeButton)

	c.AppendChildWidget(widget.NewLocalizedLabel("settings_heading", "settings_title", nil))
	c.AppendChildWidget(body)
	return c
}
