package chartpage

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	defaultSnapshotWidth  = 1024
	defaultSnapshotHeight = 720
	defaultSnapshotWait   = 500 * time.Millisecond
	defaultSnapshotLimit  = 30 * time.Second
)

type SnapshotOptions struct {
	Width   int64
	Height  int64
	Timeout time.Duration
	// ExecPath overrides the Chrome binary chromedp would otherwise discover.
	ExecPath string
}

// Snapshot loads html in headless Chrome and returns a PNG screenshot of the page.
func Snapshot(ctx context.Context, html string, opts SnapshotOptions) ([]byte, error) {
	opts = withSnapshotDefaults(opts)

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancel := context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(opts.Width, opts.Height),
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("#trendChart", chromedp.ByQuery),
		chromedp.Sleep(defaultSnapshotWait),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("snapshot chart page: %w", err)
	}

	return buf, nil
}

func withSnapshotDefaults(opts SnapshotOptions) SnapshotOptions {
	if opts.Width <= 0 {
		opts.Width = defaultSnapshotWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultSnapshotHeight
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultSnapshotLimit
	}
	return opts
}
