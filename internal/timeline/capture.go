package timeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const captureTimeout = 30 * time.Second

// Renderer rasterizes timeline SVGs to PNG through a headless Chromium.
type Renderer struct {
	allocOpts []chromedp.ExecAllocatorOption
}

// NewRenderer builds a renderer using the default headless allocator options.
func NewRenderer() *Renderer {
	return &Renderer{
		allocOpts: append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("hide-scrollbars", true),
		),
	}
}

// RenderPNG lays out the input, emits SVG, loads it in a headless browser via
// a data URL, and screenshots the page at the layout's dimensions.
func (r *Renderer) RenderPNG(ctx context.Context, in Input) ([]byte, error) {
	l := Build(in)
	svg := RenderSVG(l)
	url := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, r.allocOpts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()
	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, captureTimeout)
	defer timeoutCancel()

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(l.Width), int64(l.Height)),
		chromedp.Navigate(url),
		// Let the page settle before the screenshot.
		chromedp.Sleep(500 * time.Millisecond),
		chromedp.FullScreenshot(&png, 100),
	}
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, fmt.Errorf("timeline: screenshot failed: %w", err)
	}
	return png, nil
}
