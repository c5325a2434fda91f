package module_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/BrandonKowalski/telly/pkg/telly/device"
	"github.com/BrandonKowalski/telly/pkg/telly/module"
	"github.com/BrandonKowalski/telly/pkg/telly/widget"
)

func newHome() *widget.Component {
	c := widget.NewComponent("home")
	menu := widget.NewList("home_menu", widget.Vertical)
	menu.AppendChildWidget(widget.NewTextButton("movies", "Movies"))
	menu.AppendChildWidget(widget.NewTextButton("series", "Series"))
	c.AppendChildWidget(menu)
	c.SetStateFunc(func() widget.State {
		return widget.State{"selected": menu.ActiveChildWidget().ID()}
	})
	return c
}

func newDetail() *widget.Component {
	c := widget.NewComponent("detail")
	title := widget.NewLabel("detail_title", "")
	c.AppendChildWidget(title)
	c.AppendChildWidget(widget.NewTextButton("play", "Play"))
	c.OnShow(func(args widget.Args, state widget.State, fromBack bool) {
		title.SetText(fmt.Sprintf("Title %v", args["id"]))
	})
	return c
}

func Example() {
	catalog := module.New().
		Register("home", newHome).
		Register("detail", newDetail)

	dev := device.NewSurface(device.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	app := widget.NewApplication(dev, widget.WithLoader(catalog))

	root := widget.NewContainer("root")
	content := widget.NewComponentContainer("content", nil)
	root.AppendChildWidget(content)
	app.SetRootWidget(root)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	content.Show("home", widget.ShowOptions{})
	_ = app.Loop().RunOne(ctx)
	fmt.Println(content.CurrentModule(), app.FocussedWidget().ID())

	content.PushComponent("detail", widget.Args{"id": 42})
	_ = app.Loop().RunOne(ctx)
	fmt.Println(content.CurrentModule(), dev.Root().Find("detail_title").Text)

	content.Back()
	fmt.Println(content.CurrentModule(), content.History())

	// Output:
	// home movies
	// detail Title 42
	// home []
}
