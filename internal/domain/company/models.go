package company

import "strings"

const DefaultName = "UtamaHR System"

// Settings is the letterhead printed on every document.
type Settings struct {
	Name       string `json:"name"`
	ShortName  string `json:"shortName,omitempty"`
	RegNumber  string `json:"regNumber,omitempty"`
	Address    string `json:"address,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Fax        string `json:"fax,omitempty"`
	Email      string `json:"email,omitempty"`
	Website    string `json:"website,omitempty"`
	LogoURL    string `json:"logoUrl,omitempty"`
	Logo       []byte `json:"logo,omitempty"`
}

func Default() Settings {
	return Settings{Name: DefaultName}
}

// Merge fills empty fields of s from fallback.
func (s Settings) Merge(fallback Settings) Settings {
	pick := func(v, alt string) string {
		if strings.TrimSpace(v) != "" {
			return v
		}
		return alt
	}
	out := s
	out.Name = pick(s.Name, fallback.Name)
	out.ShortName = pick(s.ShortName, fallback.ShortName)
	out.RegNumber = pick(s.RegNumber, fallback.RegNumber)
	out.Address = pick(s.Address, fallback.Address)
	out.PostalCode = pick(s.PostalCode, fallback.PostalCode)
	out.City = pick(s.City, fallback.City)
	out.State = pick(s.State, fallback.State)
	out.Phone = pick(s.Phone, fallback.Phone)
	out.Fax = pick(s.Fax, fallback.Fax)
	out.Email = pick(s.Email, fallback.Email)
	out.Website = pick(s.Website, fallback.Website)
	out.LogoURL = pick(s.LogoURL, fallback.LogoURL)
	if len(out.Logo) == 0 {
		out.Logo = fallback.Logo
	}
	return out
}

// AddressLines splits the stored address into non-empty lines.
func (s Settings) AddressLines() []string {
	var lines []string
	for _, line := range strings.Split(s.Address, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// Locality renders "postcode city, state" with whichever parts exist.
func (s Settings) Locality() string {
	head := strings.TrimSpace(strings.TrimSpace(s.PostalCode) + " " + strings.TrimSpace(s.City))
	state := strings.TrimSpace(s.State)
	switch {
	case head != "" && state != "":
		return head + ", " + state
	case head != "":
		return head
	default:
		return state
	}
}

// Contact renders "Tel: x | Fax: y".
func (s Settings) Contact() string {
	var parts []string
	if s.Phone != "" {
		parts = append(parts, "Tel: "+s.Phone)
	}
	if s.Fax != "" {
		parts = append(parts, "Fax: "+s.Fax)
	}
	return strings.Join(parts, " | ")
}
