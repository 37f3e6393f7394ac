package company

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeKeepsOwnValues(t *testing.T) {
	got := Settings{Name: "Own", Email: "hr@own.my"}.Merge(Settings{Name: "Fallback", RegNumber: "999-X"})
	assert.Equal(t, "Own", got.Name)
	assert.Equal(t, "999-X", got.RegNumber)
	assert.Equal(t, "hr@own.my", got.Email)
}

func TestLetterheadHelpers(t *testing.T) {
	s := Settings{
		Address:    "Lot 5, Jalan Teknologi\n\n Taman Sains ",
		PostalCode: "47810",
		City:       "Petaling Jaya",
		State:      "Selangor",
		Phone:      "03-1234 5678",
		Fax:        "03-8765 4321",
	}
	assert.Equal(t, []string{"Lot 5, Jalan Teknologi", "Taman Sains"}, s.AddressLines())
	assert.Equal(t, "47810 Petaling Jaya, Selangor", s.Locality())
	assert.Equal(t, "Tel: 03-1234 5678 | Fax: 03-8765 4321", s.Contact())
	assert.Equal(t, "Selangor", Settings{State: "Selangor"}.Locality())
	assert.Empty(t, Settings{}.Contact())
}

func TestLogoHTML(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	s := Settings{Name: "Logo Co", Logo: png}
	assert.True(t, strings.HasPrefix(s.LogoDataURI(), "data:image/png;base64,"))
	assert.Contains(t, s.LogoHTML(), `<img class="company-logo"`)

	assert.Empty(t, Settings{Logo: []byte("plain text")}.LogoDataURI())
	assert.Contains(t, Settings{LogoURL: "https://cdn.example/logo.png"}.LogoHTML(), "https://cdn.example/logo.png")
	assert.Empty(t, Settings{}.LogoHTML())
}
