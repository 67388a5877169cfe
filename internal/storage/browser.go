package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// BrowserOptions configures the chromedp-driven store.
type BrowserOptions struct {
	// Origin is the storefront page whose localStorage is used.
	Origin   string
	Headless bool
	ExecPath string
	Timeout  time.Duration
}

// Browser reads and writes window.localStorage of a real browser tab, so the
// client shares its cart and session with the web storefront.
type Browser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	opts        BrowserOptions
	logger      *zap.Logger

	mu        sync.Mutex
	navigated bool
}

func NewBrowser(opts BrowserOptions, logger *zap.Logger) (*Browser, error) {
	if opts.Origin == "" {
		return nil, fmt.Errorf("storage: BROWSER_ORIGIN not configured")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Flag("headless", opts.Headless))
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// start the browser now so that per-call timeouts never own it
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	logger.Info("✅ browser storage started", zap.String("origin", opts.Origin))
	return &Browser{ctx: ctx, cancel: cancel, allocCancel: allocCancel, opts: opts, logger: logger}, nil
}

func (b *Browser) run(ctx context.Context, actions ...chromedp.Action) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.navigated {
		actions = append([]chromedp.Action{
			chromedp.Navigate(b.opts.Origin),
			chromedp.WaitReady("body", chromedp.ByQuery),
		}, actions...)
	}

	runCtx, cancel := context.WithTimeout(b.ctx, b.opts.Timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		return err
	}
	b.navigated = true
	return nil
}

type getResult struct {
	Found bool   `json:"found"`
	Value string `json:"value"`
}

func (b *Browser) Get(ctx context.Context, key string) (string, error) {
	var res getResult
	if err := b.run(ctx, chromedp.Evaluate(getScript(key), &res)); err != nil {
		return "", fmt.Errorf("storage: get %q: %w", key, err)
	}
	if !res.Found {
		return "", ErrNotFound
	}
	return res.Value, nil
}

func (b *Browser) Set(ctx context.Context, key, value string) error {
	var exc string
	if err := b.run(ctx, chromedp.Evaluate(setScript(key, value), &exc)); err != nil {
		return &WriteError{Op: "set", Key: key, Err: err}
	}
	return scriptError("set", key, exc)
}

func (b *Browser) Remove(ctx context.Context, key string) error {
	var exc string
	if err := b.run(ctx, chromedp.Evaluate(removeScript(key), &exc)); err != nil {
		return &WriteError{Op: "remove", Key: key, Err: err}
	}
	return scriptError("remove", key, exc)
}

func (b *Browser) Ping(ctx context.Context) error {
	var ok bool
	if err := b.run(ctx, chromedp.Evaluate(pingScript, &ok)); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !ok {
		return ErrUnavailable
	}
	return nil
}

func (b *Browser) Close() error {
	b.cancel()
	b.allocCancel()
	return nil
}

// --- page scripts ---

const pingScript = `(() => {
	try {
		return typeof window !== "undefined" && !!window.localStorage;
	} catch (e) {
		return false;
	}
})()`

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func getScript(key string) string {
	return fmt.Sprintf(`(() => {
	const v = window.localStorage.getItem(%s);
	return v === null ? {found: false, value: ""} : {found: true, value: v};
})()`, jsString(key))
}

func setScript(key, value string) string {
	return fmt.Sprintf(`(() => {
	try {
		window.localStorage.setItem(%s, %s);
		return "";
	} catch (e) {
		return e.name || String(e);
	}
})()`, jsString(key), jsString(value))
}

func removeScript(key string) string {
	return fmt.Sprintf(`(() => {
	try {
		window.localStorage.removeItem(%s);
		return "";
	} catch (e) {
		return e.name || String(e);
	}
})()`, jsString(key))
}

// scriptError turns the exception name reported by a page script into a
// WriteError, or nil when the script succeeded.
func scriptError(op, key, exc string) error {
	switch exc {
	case "":
		return nil
	case "QuotaExceededError", "NS_ERROR_DOM_QUOTA_REACHED":
		return &WriteError{Op: op, Key: key, Err: ErrQuotaExceeded}
	case "SecurityError":
		return &WriteError{Op: op, Key: key, Err: ErrUnavailable}
	default:
		return &WriteError{Op: op, Key: key, Err: fmt.Errorf("page exception: %s", exc)}
	}
}
