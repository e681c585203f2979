// Package chromium drives a shared headless Chromium instance through
// chromedp to render navigated pages to PDF and inline HTML to PNG.
package chromium

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/nathangurfinkel/cv-app-ng-pdf-generator/render"
)

const defaultPDFScale = 1.0

var pdfLengthPattern = regexp.MustCompile(`^\s*([0-9]+(?:\.[0-9]+)?)\s*([a-zA-Z]*)\s*$`)

var pdfPageSizesInches = map[string]struct {
	width  float64
	height float64
}{
	"A3":     {width: 11.69, height: 16.54},
	"A4":     {width: 8.27, height: 11.69},
	"A5":     {width: 5.83, height: 8.27},
	"LETTER": {width: 8.5, height: 11},
	"LEGAL":  {width: 8.5, height: 14},
}

// Engine renders output using a shared headless Chromium instance. The
// browser starts lazily on first use and is reused across jobs; each job
// runs in its own tab context.
type Engine struct {
	BrowserPath string
	Headless    bool
	Timeout     time.Duration
	Args        []string

	initOnce      sync.Once
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

var _ render.Engine = (*Engine)(nil)

// RenderPDF navigates to the job URL, runs the injection script, waits
// for the page to settle and prints it to PDF.
func (e *Engine) RenderPDF(ctx context.Context, job render.PDFJob) ([]byte, error) {
	execCtx, cleanup, err := e.newTab(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var pdf []byte
	actions := []chromedp.Action{}
	if job.Viewport.Width > 0 && job.Viewport.Height > 0 {
		actions = append(actions, chromedp.EmulateViewport(job.Viewport.Width, job.Viewport.Height))
	}
	actions = append(actions,
		chromedp.Navigate(job.URL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if job.Script != "" {
		actions = append(actions, chromedp.Evaluate(job.Script, nil))
	}
	if job.Settle > 0 {
		actions = append(actions, chromedp.Sleep(job.Settle))
	}
	actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
		params, err := buildPrintToPDFParams(job.Options)
		if err != nil {
			return err
		}
		pdf, _, err = params.Do(ctx)
		return err
	}))

	if err := chromedp.Run(execCtx, actions...); err != nil {
		return nil, asEngineError("chromium pdf render failed", err)
	}
	return pdf, nil
}

// RenderImage loads inline HTML into a blank tab and screenshots the
// viewport as PNG.
func (e *Engine) RenderImage(ctx context.Context, job render.ImageJob) ([]byte, error) {
	execCtx, cleanup, err := e.newTab(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var png []byte
	actions := []chromedp.Action{}
	if job.Viewport.Width > 0 && job.Viewport.Height > 0 {
		actions = append(actions, chromedp.EmulateViewport(job.Viewport.Width, job.Viewport.Height))
	}
	actions = append(actions,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, job.HTML).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if job.Settle > 0 {
		actions = append(actions, chromedp.Sleep(job.Settle))
	}
	actions = append(actions, chromedp.CaptureScreenshot(&png))

	if err := chromedp.Run(execCtx, actions...); err != nil {
		return nil, asEngineError("chromium screenshot failed", err)
	}
	return png, nil
}

// Close releases Chromium resources if they have been initialized.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}
	if e.browserCancel != nil {
		e.browserCancel()
	}
	if e.allocCancel != nil {
		e.allocCancel()
	}
	return nil
}

// newTab opens a tab context wired to the caller's context and the
// engine timeout. The returned cleanup releases the tab.
func (e *Engine) newTab(ctx context.Context) (context.Context, func(), error) {
	if e == nil {
		return nil, nil, render.NewError(render.KindInternal, "chromium engine is nil", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := e.ensureBrowser(); err != nil {
		return nil, nil, render.NewError(render.KindInternal, "chromium engine init failed", err)
	}

	tabCtx, cancelTab := chromedp.NewContext(e.browserCtx)
	cancels := []context.CancelFunc{cancelTab}

	execCtx, cancelReq := context.WithCancel(tabCtx)
	cancels = append(cancels, cancelReq)
	go func() {
		select {
		case <-ctx.Done():
			cancelReq()
		case <-execCtx.Done():
		}
	}()

	if e.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		execCtx, cancelTimeout = context.WithTimeout(execCtx, e.Timeout)
		cancels = append(cancels, cancelTimeout)
	}

	cleanup := func() {
		for i := len(cancels) - 1; i >= 0; i-- {
			cancels[i]()
		}
	}
	return execCtx, cleanup, nil
}

func (e *Engine) ensureBrowser() error {
	e.initOnce.Do(func() {
		options := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		if e.BrowserPath != "" {
			options = append(options, chromedp.ExecPath(e.BrowserPath))
		}
		options = append(options, chromedp.Flag("headless", e.Headless))
		options = append(options, allocatorOptionsFromArgs(e.Args)...)

		e.allocCtx, e.allocCancel = chromedp.NewExecAllocator(context.Background(), options...)
		e.browserCtx, e.browserCancel = chromedp.NewContext(e.allocCtx)
	})
	if e.allocCtx == nil || e.browserCtx == nil {
		return errors.New("chromium allocator unavailable")
	}
	return nil
}

func asEngineError(msg string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	return render.NewError(render.KindInternal, msg, err)
}

func buildPrintToPDFParams(opts render.PDFOptions) (*page.PrintToPDFParams, error) {
	params := page.PrintToPDF()

	scale := opts.Scale
	if scale == 0 {
		scale = defaultPDFScale
	}
	if scale < 0.1 || scale > 2.0 {
		return nil, render.NewError(render.KindValidation, "pdf scale must be between 0.1 and 2.0", nil)
	}
	params = params.WithScale(scale)

	if opts.Landscape != nil {
		params = params.WithLandscape(*opts.Landscape)
	}
	if opts.PrintBackground != nil {
		params = params.WithPrintBackground(*opts.PrintBackground)
	}

	preferCSS := false
	if opts.PreferCSSPageSize != nil {
		preferCSS = *opts.PreferCSSPageSize
	} else if opts.PageSize == "" {
		preferCSS = true
	}
	if preferCSS {
		params = params.WithPreferCSSPageSize(true)
	}

	if opts.PageSize != "" {
		size, ok := pdfPageSizesInches[strings.ToUpper(opts.PageSize)]
		if !ok {
			return nil, render.NewError(render.KindValidation, fmt.Sprintf("unsupported pdf page size: %s", opts.PageSize), nil)
		}
		params = params.WithPaperWidth(size.width).WithPaperHeight(size.height)
	}

	if opts.MarginTop != "" {
		value, err := parseLengthInches(opts.MarginTop)
		if err != nil {
			return nil, err
		}
		params = params.WithMarginTop(value)
	}
	if opts.MarginBottom != "" {
		value, err := parseLengthInches(opts.MarginBottom)
		if err != nil {
			return nil, err
		}
		params = params.WithMarginBottom(value)
	}
	if opts.MarginLeft != "" {
		value, err := parseLengthInches(opts.MarginLeft)
		if err != nil {
			return nil, err
		}
		params = params.WithMarginLeft(value)
	}
	if opts.MarginRight != "" {
		value, err := parseLengthInches(opts.MarginRight)
		if err != nil {
			return nil, err
		}
		params = params.WithMarginRight(value)
	}

	return params, nil
}

func parseLengthInches(value string) (float64, error) {
	matches := pdfLengthPattern.FindStringSubmatch(value)
	if len(matches) != 3 {
		return 0, render.NewError(render.KindValidation, fmt.Sprintf("invalid pdf length: %s", value), nil)
	}

	raw := matches[1]
	unit := strings.ToLower(matches[2])
	if unit == "" {
		unit = "in"
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, render.NewError(render.KindValidation, fmt.Sprintf("invalid pdf length: %s", value), err)
	}

	switch unit {
	case "in":
		return amount, nil
	case "cm":
		return amount / 2.54, nil
	case "mm":
		return amount / 25.4, nil
	case "pt":
		return amount / 72.0, nil
	case "px":
		return amount / 96.0, nil
	default:
		return 0, render.NewError(render.KindValidation, fmt.Sprintf("unsupported pdf length unit: %s", unit), nil)
	}
}

func allocatorOptionsFromArgs(args []string) []chromedp.ExecAllocatorOption {
	options := make([]chromedp.ExecAllocatorOption, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		arg = strings.TrimPrefix(arg, "--")
		if arg == "" {
			continue
		}
		if name, value, ok := strings.Cut(arg, "="); ok {
			options = append(options, chromedp.Flag(name, value))
			continue
		}
		options = append(options, chromedp.Flag(arg, true))
	}
	return options
}
