package rendering

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/eventops/backend/internal/domain/rendering"
)

const (
	defaultChromeTimeout = 30 * time.Second
	defaultSettleDelay   = 200 * time.Millisecond
	defaultScale         = 1.0
)

// ChromeConfig contains configuration for one Chrome launch strategy
type ChromeConfig struct {
	// Name identifies the strategy in logs
	Name string
	// ExecPath points at a specific Chromium binary; empty means let
	// chromedp find an installed browser
	ExecPath string
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// DisableGPU disables GPU hardware acceleration
	DisableGPU bool
	// Minimal skips the hardening flags and launches with the bare
	// defaults, the last-resort configuration
	Minimal bool
	// DefaultTimeout bounds a single render attempt
	DefaultTimeout time.Duration
	// SettleDelay is the short grace period after the document loads,
	// letting fonts and layout settle before printing
	SettleDelay time.Duration
	// Scale for rendering (default: 1.0)
	Scale float64
	// Logger for debug output
	Logger *zap.Logger
}

// ChromeRenderer renders HTML to PDF over the Chrome DevTools Protocol.
// Every Render call launches a fresh browser process and tears it down
// before returning, so a crashed or wedged Chrome never poisons the
// next attempt.
type ChromeRenderer struct {
	config *ChromeConfig
	logger *zap.Logger
}

// NewManagedChromeRenderer uses the bundled Chromium binary at execPath
// with the flags a containerized deployment needs. Fails fast with
// BINARY_NOT_FOUND when the binary is missing.
func NewManagedChromeRenderer(execPath string, config *ChromeConfig) (*ChromeRenderer, error) {
	resolved, err := resolveBinaryPath(execPath)
	if err != nil {
		return nil, NewRenderError(ErrCodeBinaryNotFound,
			fmt.Sprintf("managed chromium binary not found: %s", execPath), err)
	}

	if config == nil {
		config = &ChromeConfig{}
	}
	config.Name = "managed"
	config.ExecPath = resolved
	config.NoSandbox = true
	config.DisableGPU = true
	return newChromeRenderer(config)
}

// NewLocalChromeRenderer uses whatever Chrome or Chromium install
// chromedp discovers on the host.
func NewLocalChromeRenderer(config *ChromeConfig) (*ChromeRenderer, error) {
	if config == nil {
		config = &ChromeConfig{}
	}
	config.Name = "local"
	config.DisableGPU = true
	return newChromeRenderer(config)
}

// NewMinimalChromeRenderer launches with the bare default options and
// no advanced waiting, the final fallback when the tuned configurations
// fail to start.
func NewMinimalChromeRenderer(config *ChromeConfig) (*ChromeRenderer, error) {
	if config == nil {
		config = &ChromeConfig{}
	}
	config.Name = "minimal"
	config.Minimal = true
	config.SettleDelay = -1
	return newChromeRenderer(config)
}

func newChromeRenderer(config *ChromeConfig) (*ChromeRenderer, error) {
	if config.DefaultTimeout == 0 {
		config.DefaultTimeout = defaultChromeTimeout
	}
	if config.SettleDelay == 0 {
		config.SettleDelay = defaultSettleDelay
	}
	if config.Scale == 0 {
		config.Scale = defaultScale
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ChromeRenderer{
		config: config,
		logger: logger,
	}, nil
}

// Name returns the strategy name for logging
func (r *ChromeRenderer) Name() string {
	return r.config.Name
}

// allocatorOptions builds the launch flags for this strategy
func (r *ChromeRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	if r.config.Minimal {
		opts := chromedp.DefaultExecAllocatorOptions[:]
		if r.config.ExecPath != "" {
			opts = append(opts, chromedp.ExecPath(r.config.ExecPath))
		}
		return opts
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		// Font rendering
		chromedp.Flag("font-render-hinting", "none"),
	)
	if r.config.DisableGPU {
		opts = append(opts, chromedp.Flag("disable-gpu", true))
	}
	if r.config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	if r.config.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.config.ExecPath))
	}
	return opts
}

// Render converts HTML content to PDF
func (r *ChromeRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	}
	if strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}
	if !req.PaperSize.IsValid() {
		return nil, NewRenderError(ErrCodeInvalidPaperSize, "invalid paper size: "+string(req.PaperSize), nil)
	}

	startTime := time.Now()

	timeout := req.Timeout
	if timeout == 0 {
		timeout = r.config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Fresh browser process for this attempt, torn down on every exit path.
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	printParams := r.buildPrintParams(req)

	actions := []chromedp.Action{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			// SetDocumentContent returns once the document structure
			// has loaded.
			return page.SetDocumentContent(frameTree.Frame.ID, req.HTML).Do(ctx)
		}),
	}
	if r.config.SettleDelay > 0 {
		actions = append(actions, chromedp.Sleep(r.config.SettleDelay))
	}

	var pdfData []byte
	actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
		data, _, err := page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(printParams.paperWidth).
			WithPaperHeight(printParams.paperHeight).
			WithMarginTop(printParams.marginTop).
			WithMarginRight(printParams.marginRight).
			WithMarginBottom(printParams.marginBottom).
			WithMarginLeft(printParams.marginLeft).
			WithScale(printParams.scale).
			WithLandscape(printParams.landscape).
			WithDisplayHeaderFooter(false).
			Do(ctx)
		if err != nil {
			return err
		}
		pdfData = data
		return nil
	}))

	err := chromedp.Run(browserCtx, actions...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("PDF rendering timed out after %v", timeout), err)
		}
		if ctx.Err() == context.Canceled {
			return nil, NewRenderError(ErrCodeRenderTimeout, "PDF rendering was cancelled", err)
		}

		r.logger.Error("chromedp rendering failed",
			zap.String("strategy", r.config.Name),
			zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed: "+err.Error(), err)
	}

	if len(pdfData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	pageCount := estimatePageCount(pdfData)
	renderDuration := time.Since(startTime)

	r.logger.Info("PDF rendered successfully",
		zap.String("strategy", r.config.Name),
		zap.Int("bytes", len(pdfData)),
		zap.Int("pages", pageCount),
		zap.Duration("duration", renderDuration))

	return &RenderResult{
		PDFData:        pdfData,
		PageCount:      pageCount,
		RenderDuration: renderDuration,
	}, nil
}

// printParams holds the parameters for PDF printing
type printParams struct {
	paperWidth   float64
	paperHeight  float64
	marginTop    float64
	marginRight  float64
	marginBottom float64
	marginLeft   float64
	scale        float64
	landscape    bool
}

// buildPrintParams constructs the print parameters from the render request
func (r *ChromeRenderer) buildPrintParams(req *RenderRequest) *printParams {
	width, height := req.PaperSize.Dimensions()
	return &printParams{
		paperWidth:   mmToInches(width),
		paperHeight:  mmToInches(height),
		marginTop:    mmToInches(float64(req.Margins.Top)),
		marginRight:  mmToInches(float64(req.Margins.Right)),
		marginBottom: mmToInches(float64(req.Margins.Bottom)),
		marginLeft:   mmToInches(float64(req.Margins.Left)),
		scale:        r.config.Scale,
		landscape:    req.Orientation == rendering.OrientationLandscape,
	}
}

// Close releases resources; launch state is per-attempt, so nothing is held
func (r *ChromeRenderer) Close() error {
	return nil
}

// resolveBinaryPath finds the full path to the binary
func resolveBinaryPath(path string) (string, error) {
	if path == "" {
		return "", os.ErrNotExist
	}
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			return "", err
		}
		return path, nil
	}
	return exec.LookPath(path)
}

// Ensure ChromeRenderer implements PDFRenderer
var _ PDFRenderer = (*ChromeRenderer)(nil)
