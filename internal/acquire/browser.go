package acquire

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/fieldharvest/internal/config"
	"github.com/sells-group/fieldharvest/internal/extract"
	"github.com/sells-group/fieldharvest/internal/fieldspec"
	"github.com/sells-group/fieldharvest/internal/model"
)

// locatorTimeout bounds each XPath lookup so a missing element doesn't stall
// the whole field cascade.
const locatorTimeout = 2 * time.Second

// BrowserMethod acquires pages through a real Chromium instance so
// JS-rendered content is present in the markup. The browser is launched on
// first use, shared across all URLs in a batch, and released by Close.
// Extraction runs with the live XPath locator strategy enabled.
type BrowserMethod struct {
	cfg     config.BrowserConfig
	debug   config.DebugConfig
	waitSel []string

	mu      sync.Mutex
	browser *rod.Browser
}

// NewBrowserMethod creates a BrowserMethod. waitSelectors, when non-empty,
// are waited for after navigation instead of the fixed settle sleep.
func NewBrowserMethod(cfg config.BrowserConfig, debug config.DebugConfig, waitSelectors []string) *BrowserMethod {
	return &BrowserMethod{
		cfg:     cfg,
		debug:   debug,
		waitSel: waitSelectors,
	}
}

func (b *BrowserMethod) Name() string { return "browser" }

// ensureBrowser launches Chromium once and reuses it. Launch flags mirror the
// usual automation-hiding set: AutomationControlled off, no first run, no
// sandbox inside containers.
func (b *BrowserMethod) ensureBrowser() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, nil
	}

	l := launcher.New().
		Headless(b.cfg.Headless).
		NoSandbox(true)

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("no-first-run"))
	l.Set(flags.Flag("start-maximized"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, eris.Wrap(err, "browser: launch")
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, eris.Wrap(err, "browser: connect")
	}

	zap.L().Info("browser launched",
		zap.Bool("headless", b.cfg.Headless),
		zap.String("control_url", controlURL),
	)

	b.browser = browser
	return browser, nil
}

// Attempt renders the URL in the shared browser, waits for it to settle, and
// extracts fields with live-locator support. Screenshot and raw-HTML dumps
// are side effects only and never fail the attempt.
func (b *BrowserMethod) Attempt(ctx context.Context, url string, fields fieldspec.Config) (model.Record, error) {
	browser, err := b.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, eris.Wrap(err, "browser: open page")
	}
	defer func() { _ = page.Close() }()

	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		zap.L().Warn("browser: stealth injection failed, continuing without it", zap.Error(err))
	}

	navCtx, cancel := context.WithTimeout(ctx, time.Duration(b.cfg.PageLoadTimeoutSecs)*time.Second)
	defer cancel()
	p := page.Context(navCtx)

	if err := p.Navigate(url); err != nil {
		return nil, eris.Wrap(err, "browser: navigate")
	}
	if err := p.WaitLoad(); err != nil {
		return nil, eris.Wrap(err, "browser: wait load")
	}

	b.settle(ctx, p)

	if b.cfg.SaveScreenshots {
		b.saveScreenshot(p)
	}

	markup, err := p.HTML()
	if err != nil {
		return nil, eris.Wrap(err, "browser: read page html")
	}
	if b.debug.SaveHTML {
		b.dumpHTML(markup)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, eris.Wrap(err, "browser: parse page html")
	}

	return extract.Extract(doc, &rodLocator{page: p}, fields), nil
}

// settle waits for each configured selector to appear, swallowing per-selector
// timeouts so one missing selector never blocks the rest. With no selectors
// configured it falls back to a fixed sleep.
func (b *BrowserMethod) settle(ctx context.Context, p *rod.Page) {
	if len(b.waitSel) > 0 {
		wait := time.Duration(b.cfg.WaitSeconds) * time.Second
		for _, sel := range b.waitSel {
			if _, err := p.Timeout(wait).Element(sel); err != nil {
				zap.L().Debug("browser: wait selector did not appear",
					zap.String("selector", sel),
					zap.Error(err),
				)
			}
		}
		return
	}

	t := time.NewTimer(time.Duration(b.cfg.SleepAfterLoad) * time.Second)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (b *BrowserMethod) saveScreenshot(p *rod.Page) {
	dir := b.cfg.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		zap.L().Warn("browser: create screenshot dir failed", zap.Error(err))
		return
	}

	data, err := p.Screenshot(false, nil)
	if err != nil {
		zap.L().Warn("browser: screenshot failed", zap.Error(err))
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("page_%d.png", time.Now().Unix()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		zap.L().Warn("browser: write screenshot failed", zap.Error(err))
		return
	}
	zap.L().Debug("browser: screenshot saved", zap.String("path", path))
}

func (b *BrowserMethod) dumpHTML(markup string) {
	dir := b.debug.HTMLDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, fmt.Sprintf("debug_html_%d.html", time.Now().Unix()))
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		zap.L().Warn("browser: write html dump failed", zap.Error(err))
		return
	}
	zap.L().Debug("browser: html dump saved", zap.String("path", path))
}

// Close releases the shared browser, best-effort. Safe to call when no page
// was ever rendered.
func (b *BrowserMethod) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return
	}
	if err := b.browser.Close(); err != nil {
		zap.L().Warn("browser: close failed", zap.Error(err))
	}
	b.browser = nil
}

// rodLocator adapts a live rod page to the extract.LiveLocator interface
// using the browser's native XPath dialect.
type rodLocator struct {
	page *rod.Page
}

func (r *rodLocator) LocateText(expr string) (string, error) {
	el, err := r.page.Timeout(locatorTimeout).ElementX(expr)
	if err != nil {
		return "", err
	}
	return el.Text()
}
