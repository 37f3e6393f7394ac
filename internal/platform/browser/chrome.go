// Package browser prints HTML to PDF with a headless Chrome started per call.
package browser

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

const mmPerInch = 25.4

var (
	ErrLaunch = errors.New("headless browser launch failed")
	ErrPrint  = errors.New("headless browser print failed")
)

type PageOptions struct {
	WidthMM         float64
	HeightMM        float64
	MarginMM        float64
	PrintBackground bool
}

type Chrome struct {
	ExecPath string
	Timeout  time.Duration
	Log      logrus.FieldLogger
}

func NewChrome(execPath string, timeout time.Duration, log logrus.FieldLogger) *Chrome {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Chrome{ExecPath: execPath, Timeout: timeout, Log: log}
}

// PrintPDF launches a private browser, loads html into a blank page and prints it.
// The browser process is torn down before returning on every path.
func (c *Chrome) PrintPDF(ctx context.Context, html string, opts PageOptions) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	allocOpts := make([]chromedp.ExecAllocatorOption, 0, len(chromedp.DefaultExecAllocatorOptions)+4)
	allocOpts = append(allocOpts, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts,
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	start := time.Now()
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, errors.Wrapf(ErrLaunch, "%v", err)
	}

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := printParams(opts).Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(ErrPrint, "%v", err)
	}

	c.log().WithFields(logrus.Fields{
		"bytes":       len(pdf),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("html printed to pdf")
	return pdf, nil
}

func (c *Chrome) log() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

func printParams(opts PageOptions) *page.PrintToPDFParams {
	margin := MMToInch(opts.MarginMM)
	params := page.PrintToPDF().
		WithPrintBackground(opts.PrintBackground).
		WithPreferCSSPageSize(false).
		WithMarginTop(margin).
		WithMarginBottom(margin).
		WithMarginLeft(margin).
		WithMarginRight(margin)
	if opts.WidthMM > 0 {
		params = params.WithPaperWidth(MMToInch(opts.WidthMM))
	}
	if opts.HeightMM > 0 {
		params = params.WithPaperHeight(MMToInch(opts.HeightMM))
	}
	return params
}

func MMToInch(mm float64) float64 {
	return mm / mmPerInch
}
