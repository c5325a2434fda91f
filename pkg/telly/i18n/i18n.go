// Package i18n localises widget text with go-i18n message bundles.
//
// A Translator satisfies widget.Localizer, so labels created with
// widget.NewLocalizedLabel resolve through it once their tree is attached to
// an application built WithLocalizer.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sync"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/BrandonKowalski/telly/pkg/telly"
	"github.com/BrandonKowalski/telly/pkg/telly/config"
)

//go:embed locales/*.toml
var builtin embed.FS

// DefaultLanguage is the bundle's fallback language.
var DefaultLanguage = language.English

// Translator resolves message ids for the current locale.
type Translator struct {
	mu        sync.RWMutex
	bundle    *goi18n.Bundle
	localizer *goi18n.Localizer
	tag       language.Tag
	logger    *slog.Logger
}

// New creates a translator with the built in messages loaded and the locale
// set. Unsupported locales fall back to DefaultLanguage.
func New(locale string) (*Translator, error) {
	bundle := goi18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yml", yaml.Unmarshal)

	t := &Translator{
		bundle: bundle,
		logger: telly.GetLogger(),
	}

	if err := t.loadFS(builtin, "locales"); err != nil {
		return nil, err
	}
	if err := t.SetLocale(locale); err != nil {
		return nil, err
	}
	return t, nil
}

// FromConfig creates a translator for cfg.Locale and loads the configured
// message files.
func FromConfig(cfg config.Config) (*Translator, error) {
	t, err := New(DefaultLanguage.String())
	if err != nil {
		return nil, err
	}
	for _, file := range cfg.I18n.MessageFiles {
		if err := t.LoadMessageFile(file); err != nil {
			return nil, err
		}
	}
	if err := t.SetLocale(cfg.Locale); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Translator) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return telly.NewInfrastructureError("load_messages", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := t.bundle.LoadMessageFileFS(fsys, path.Join(dir, entry.Name())); err != nil {
			return telly.NewInfrastructureError("load_messages", err)
		}
	}
	return nil
}

// LoadMessageFile loads a TOML or YAML message file. The language is taken
// from the file name, as in "active.fr.toml".
func (t *Translator) LoadMessageFile(file string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.bundle.LoadMessageFile(file); err != nil {
		return telly.NewInfrastructureError("load_messages", err)
	}
	t.refresh()
	return nil
}

// AddMessages adds plain messages for locale.
func (t *Translator) AddMessages(locale string, messages map[string]string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return telly.NewInfrastructureError("parse_locale", err)
	}

	msgs := make([]*goi18n.Message, 0, len(messages))
	for id, other := range messages {
		msgs = append(msgs, &goi18n.Message{ID: id, Other: other})
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.bundle.AddMessages(tag, msgs...); err != nil {
		return telly.NewInfrastructureError("add_messages", err)
	}
	t.refresh()
	return nil
}

// SetLocale switches to the closest supported language.
func (t *Translator) SetLocale(locale string) error {
	requested, err := language.Parse(locale)
	if err != nil {
		return telly.NewInfrastructureError("parse_locale", fmt.Errorf("%q: %w", locale, err))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.tag = t.match(requested)
	t.refresh()
	return nil
}

func (t *Translator) match(requested language.Tag) language.Tag {
	supported := t.bundle.LanguageTags()
	if len(supported) == 0 {
		return DefaultLanguage
	}
	_, index, confidence := language.NewMatcher(supported).Match(requested)
	if confidence == language.No {
		return DefaultLanguage
	}
	return supported[index]
}

// refresh rebuilds the localizer. Callers hold mu.
func (t *Translator) refresh() {
	if t.tag == language.Und {
		t.tag = DefaultLanguage
	}
	t.localizer = goi18n.NewLocalizer(t.bundle, t.tag.String())
}

// Locale returns the language messages are resolved in.
func (t *Translator) Locale() language.Tag {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tag
}

// Languages returns every language with messages, default first.
func (t *Translator) Languages() []language.Tag {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.bundle.LanguageTags()
}

// Localize resolves messageID, returning the id itself when no language
// has the message.
func (t *Translator) Localize(messageID string, data map[string]any) string {
	t.mu.RLock()
	localizer := t.localizer
	t.mu.RUnlock()

	text, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		t.logger.Debug("Missing translation", "message", messageID, "locale", t.Locale().String(), "error", err)
		if text == "" {
			return messageID
		}
	}
	return text
}
