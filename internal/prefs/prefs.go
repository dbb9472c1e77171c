// Package prefs reads and writes the user's persisted state (theme, filter,
// daily mode and favorites) over a string key/value store.
package prefs

import (
	"encoding/json"
	"fmt"

	"github.com/norregaard/logos-maximus/internal/quote"
)

const (
	KeyTheme          = "theme"
	KeyDailyMode      = "dailyMode"
	KeyFilterCategory = "filter.category"
	KeyFilterShort    = "filter.short"
	KeyFilterQuery    = "filter.q"
	KeyFavorites      = "favorites"
)

// KV is the persistence the preferences live in. Values are plain strings.
type KV interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Glyph is the icon shown on the theme button: a sun while dark (switch to
// light), a moon while light.
func (t Theme) Glyph() string {
	if t == ThemeDark {
		return "☀️"
	}
	return "🌙"
}

// Filter is the persisted search filter.
type Filter struct {
	Category string
	Short    bool
	Query    string
}

// Prefs is the typed view over a KV.
type Prefs struct {
	kv KV
}

func New(kv KV) *Prefs {
	return &Prefs{kv: kv}
}

// Theme returns the persisted theme. When nothing valid is stored it asks
// systemDark, and falls back to light when that is nil.
func (p *Prefs) Theme(systemDark func() bool) (Theme, error) {
	v, found, err := p.kv.Get(KeyTheme)
	if err != nil {
		return ThemeLight, err
	}
	if found {
		switch Theme(v) {
		case ThemeLight, ThemeDark:
			return Theme(v), nil
		}
	}
	if systemDark != nil && systemDark() {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

func (p *Prefs) SetTheme(t Theme) error {
	return p.kv.Set(KeyTheme, string(t))
}

func (p *Prefs) Daily() (bool, error) {
	return p.flag(KeyDailyMode)
}

func (p *Prefs) SetDaily(on bool) error {
	return p.kv.Set(KeyDailyMode, flagValue(on))
}

// Filter reconstructs the persisted filter. Missing keys mean "no filter".
func (p *Prefs) Filter() (Filter, error) {
	var f Filter
	var err error
	if f.Category, err = p.str(KeyFilterCategory); err != nil {
		return Filter{}, err
	}
	if f.Short, err = p.flag(KeyFilterShort); err != nil {
		return Filter{}, err
	}
	if f.Query, err = p.str(KeyFilterQuery); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// SetFilter persists each filter field under its own key.
func (p *Prefs) SetFilter(f Filter) error {
	if err := p.kv.Set(KeyFilterCategory, f.Category); err != nil {
		return err
	}
	if err := p.kv.Set(KeyFilterShort, flagValue(f.Short)); err != nil {
		return err
	}
	return p.kv.Set(KeyFilterQuery, f.Query)
}

// Favorites returns the persisted favorite list, most recent first. A
// corrupt value reads as an empty list together with ErrCorruptFavorites so
// callers can log it.
func (p *Prefs) Favorites() ([]quote.Quote, error) {
	v, found, err := p.kv.Get(KeyFavorites)
	if err != nil {
		return nil, err
	}
	if !found || v == "" {
		return []quote.Quote{}, nil
	}
	var list []quote.Quote
	if err := json.Unmarshal([]byte(v), &list); err != nil {
		return []quote.Quote{}, fmt.Errorf("%w: %v", ErrCorruptFavorites, err)
	}
	if list == nil {
		list = []quote.Quote{}
	}
	return list, nil
}

func (p *Prefs) SetFavorites(list []quote.Quote) error {
	if list == nil {
		list = []quote.Quote{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}
	return p.kv.Set(KeyFavorites, string(data))
}

func (p *Prefs) str(key string) (string, error) {
	v, _, err := p.kv.Get(key)
	return v, err
}

func (p *Prefs) flag(key string) (bool, error) {
	v, _, err := p.kv.Get(key)
	return v == "1", err
}

func flagValue(on bool) string {
	if on {
		return "1"
	}
	return "0"
}
