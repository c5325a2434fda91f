// Package module provides Catalog, the module loader that maps module names
// to component factories.
//
// A ComponentContainer never constructs components itself. It asks its
// registry for a module by name, and the registry asks its loader the first
// time the module is needed. Catalog is the loader for applications that
// ship every screen in the binary.
//
// # Basic Usage
//
//	catalog := module.New().
//	    Register("home", func() *widget.Component {
//	        c := widget.NewComponent("home")
//	        menu := widget.NewList("menu", widget.Vertical)
//	        menu.AppendChildWidget(widget.NewTextButton("play", "Play"))
//	        c.AppendChildWidget(menu)
//	        return c
//	    }).
//	    Register("settings", newSettings)
//
//	app := widget.NewApplication(dev, widget.WithLoader(catalog))
//	content := widget.NewComponentContainer("content", nil)
//	root.AppendChildWidget(content)
//	app.SetRootWidget(root)
//
//	content.Show("home", widget.ShowOptions{})
//
// Loading happens off the event loop; the component is shown once the
// application's loop runs the completion.
//
// # Navigation
//
// PushComponent keeps the current screen in the container's history, and
// Back (or the remote's back key) returns to it with the arguments it was
// shown with and the state its SetStateFunc reported when it was left.
//
// Modal components (SetModal) return focus to the widget passed as
// ShowOptions.Focus when they are hidden.
package module
