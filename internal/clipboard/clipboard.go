// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

var ErrUnavailable = errors.New("no clipboard utility available")

// System is the OS clipboard (pbcopy, xclip/xsel/wl-copy, or the Windows
// API).
type System struct{}

func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}
