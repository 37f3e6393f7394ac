package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMMToInch(t *testing.T) {
	assert.InDelta(t, 1.0, MMToInch(25.4), 1e-9)
	assert.InDelta(t, 4.7244, MMToInch(120), 1e-4)
}

func TestPrintParamsCarryPageSize(t *testing.T) {
	params := printParams(PageOptions{WidthMM: 120, HeightMM: 170, MarginMM: 3, PrintBackground: true})
	assert.True(t, params.PrintBackground)
	assert.InDelta(t, MMToInch(120), params.PaperWidth, 1e-9)
	assert.InDelta(t, MMToInch(170), params.PaperHeight, 1e-9)
	assert.InDelta(t, MMToInch(3), params.MarginTop, 1e-9)
}

func TestPrintPDFMissingBinaryFailsToLaunch(t *testing.T) {
	chrome := NewChrome("/nonexistent/chromium-binary", 5*time.Second, nil)
	pdf, err := chrome.PrintPDF(context.Background(), "<html><body>x</body></html>", PageOptions{})
	assert.ErrorIs(t, err, ErrLaunch)
	assert.Nil(t, pdf)
}
