package discord

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	loc "github.com/jmshal/go-locale"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
)

var (
	locMu     sync.RWMutex
	localizer = newLocalizer(language.English.String(), "")
)

// SetLanguage selects the language of embed field names. An empty lang
// detects the system locale. Translations are read from
// <dir>/language/active.<lang>.toml when that file exists; English is used
// otherwise.
func SetLanguage(lang, dir string) {
	if lang == "" {
		detected, err := loc.DetectLocale()
		if err != nil {
			log.WithError(err).Warn("Could not detect locale. Defaulting to English.")
			detected = language.English.String()
		}
		lang = detected
	}

	l := newLocalizer(lang, dir)

	locMu.Lock()
	localizer = l
	locMu.Unlock()
}

func newLocalizer(lang, dir string) *i18n.Localizer {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	tag, err := language.Parse(lang)
	if err != nil {
		log.WithFields(logrus.Fields{"lang": lang}).WithError(err).Warn("Unknown language. Defaulting to English.")
		tag = language.English
	}

	if tag != language.English {
		path := filepath.Join(dir, "language", "active."+tag.String()+".toml")
		if _, err := os.Stat(path); err == nil {
			if _, err := bundle.LoadMessageFile(path); err != nil {
				log.WithFields(logrus.Fields{"path": path}).WithError(err).Error("Could not load translations")
			}
		}
	}

	return i18n.NewLocalizer(bundle, tag.String())
}

// localize returns the translation of id, or other when there is none.
func localize(id, other string) string {
	locMu.RLock()
	l := localizer
	locMu.RUnlock()

	s, err := l.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: id, Other: other},
	})
	if err != nil {
		return other
	}
	return s
}
