// Package quote holds the quote entity, the query options understood by the
// quote endpoint and an HTTP client for it.
package quote

import (
	"net/url"
)

// Quote is a single quotation as returned by the backend.
type Quote struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Author   string `json:"author,omitempty"`
	Category string `json:"category,omitempty"`
}

const (
	LengthShort = "short"
	LengthLong  = "long"
	ModeDaily   = "daily"
)

// Options are the query parameters sent to the quote endpoint. Empty
// fields are omitted from the query.
type Options struct {
	ID       string
	Category string
	Length   string
	Query    string
	Mode     string
}

// Values converts the options into URL query values.
func (o Options) Values() url.Values {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	set("id", o.ID)
	set("category", o.Category)
	set("length", o.Length)
	set("q", o.Query)
	set("mode", o.Mode)
	return v
}

// Encode returns the query string, without a leading '?'.
func (o Options) Encode() string {
	return o.Values().Encode()
}

// ShareText is the text copied or shared for q: "text — author", or just
// the text when there is no author.
func ShareText(q Quote) string {
	if q.Author == "" {
		return q.Text
	}
	return q.Text + " — " + q.Author
}
