// Package share hands a quote to a share target by opening a share-intent
// URL in the user's browser.
package share

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/norregaard/logos-maximus/internal/browser"
)

// ErrUnsupported means no share target is configured; callers fall back to
// copying.
var ErrUnsupported = errors.New("sharing not supported")

type Data struct {
	Title string
	Text  string
	URL   string
}

// Intent opens a URL built from a template in which {title}, {text} and
// {url} are replaced with query-escaped values.
type Intent struct {
	Template string
	open     func(string) error
}

func NewIntent(template string) *Intent {
	return &Intent{Template: template, open: browser.Open}
}

func (i *Intent) Share(_ context.Context, d Data) error {
	if i == nil || strings.TrimSpace(i.Template) == "" {
		return ErrUnsupported
	}
	return i.open(Expand(i.Template, d))
}

// Expand fills the placeholders of template from d.
func Expand(template string, d Data) string {
	r := strings.NewReplacer(
		"{title}", url.QueryEscape(d.Title),
		"{text}", url.QueryEscape(d.Text),
		"{url}", url.QueryEscape(d.URL),
	)
	return r.Replace(template)
}
