// Package browser opens web URLs in the user's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// start launches the opener without waiting for it. Tests replace it.
var start = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open validates rawURL and hands it to the platform opener. Only http and
// https URLs are accepted.
func Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	name, args := opener(runtime.GOOS)
	return start(name, append(args, rawURL)...)
}

func opener(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		// rundll32 avoids cmd /c start interpreting the URL
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}
