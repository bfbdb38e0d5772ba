// FILE: arsenic/src/internal/timestamp/timestamp.go
package timestamp

import (
	"sync"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// Formatter renders a point in time with a Go layout pattern in a locale.
type Formatter interface {
	Format(pattern, locale string, now time.Time) string
}

// LocalizedFormatter formats with localized month and day names.
type LocalizedFormatter struct {
	mu        sync.RWMutex
	resolved  map[string]monday.Locale
	supported map[monday.Locale]bool
}

// NewFormatter creates a LocalizedFormatter.
func NewFormatter() *LocalizedFormatter {
	supported := make(map[monday.Locale]bool)
	for _, l := range monday.ListLocales() {
		supported[l] = true
	}
	return &LocalizedFormatter{
		resolved:  make(map[string]monday.Locale),
		supported: supported,
	}
}

// Format implements Formatter.
func (f *LocalizedFormatter) Format(pattern, locale string, now time.Time) string {
	return monday.Format(now, pattern, f.resolve(locale))
}

// resolve maps a BCP 47 tag such as "fr" or "pt-BR" to a monday locale, defaulting to en_US.
func (f *LocalizedFormatter) resolve(locale string) monday.Locale {
	f.mu.RLock()
	l, ok := f.resolved[locale]
	f.mu.RUnlock()
	if ok {
		return l
	}

	l = monday.LocaleEnUS
	if tag, err := language.Parse(locale); err == nil {
		base, _ := tag.Base()
		region, _ := tag.Region()
		if candidate := monday.Locale(base.String() + "_" + region.String()); f.supported[candidate] {
			l = candidate
		}
	}

	f.mu.Lock()
	f.resolved[locale] = l
	f.mu.Unlock()
	return l
}
