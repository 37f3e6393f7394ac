package company

import (
	"encoding/base64"
	"html"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// LogoDataURI embeds the stored logo so headless rendering needs no network access.
func (s Settings) LogoDataURI() string {
	if len(s.Logo) == 0 {
		return ""
	}
	mime := mimetype.Detect(s.Logo)
	if !strings.HasPrefix(mime.String(), "image/") {
		return ""
	}
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(s.Logo)
}

// LogoHTML returns an <img> tag for the logo, or an empty string when there is none.
func (s Settings) LogoHTML() string {
	src := s.LogoDataURI()
	if src == "" {
		src = strings.TrimSpace(s.LogoURL)
	}
	if src == "" {
		return ""
	}
	return `<img class="company-logo" src="` + html.EscapeString(src) + `" alt="` + html.EscapeString(s.Name) + `">`
}
