// vibescroll shows a page with a synthetic scrollbar whose thumb follows
// the page's scroll position, can be dragged, and fades out when idle.
//
// With --headless no window is opened: the page is scrolled
// programmatically for a number of frames and the scrollbar state is
// logged after each one.
package main

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/chrisuehlinger/vibescroll/bootstrap"
	"github.com/chrisuehlinger/vibescroll/clock"
	"github.com/chrisuehlinger/vibescroll/config"
	"github.com/chrisuehlinger/vibescroll/network"
	"github.com/chrisuehlinger/vibescroll/scrollbar"
	"github.com/chrisuehlinger/vibescroll/ui"
)

//go:embed demo.html
var demoPage []byte

// frameInterval is the simulated display refresh in headless mode.
const frameInterval = 16 * time.Millisecond

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		pagePath   string
		userAgent  string
		configPath string
		headless   bool
		frames     int
		step       float64
		logLevel   string
		logFormat  string
	)

	flagSet := pflag.NewFlagSet("vibescroll", pflag.ContinueOnError)
	flagSet.StringVar(&pagePath, "page", "", "HTML page path or URL to open (default: built-in demo)")
	flagSet.StringVar(&userAgent, "user-agent", network.DefaultUserAgent, "User-Agent header sent when --page is a URL")
	flagSet.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	flagSet.BoolVar(&headless, "headless", false, "run without a window and log the scrollbar state")
	flagSet.IntVar(&frames, "frames", 120, "number of frames to run in headless mode")
	flagSet.Float64Var(&step, "step", 40, "pixels scrolled per frame in headless mode")
	flagSet.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.StringVar(&logFormat, "log-format", "text", "log format: text or json")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	logger, err := newLogger(logLevel, logFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	cfg := config.Default()
	if configPath != "" {
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	src, err := openPage(context.Background(), pagePath, userAgent, logger)
	if err != nil {
		return err
	}

	var clk clock.Clock = clock.Real()
	var fake *clock.FakeClock
	if headless {
		fake = clock.Fake(time.Now())
		clk = fake
	}

	page, err := bootstrap.LoadPage(bytes.NewReader(src), cfg.Window.Width, cfg.Window.Height, clk, logger)
	if err != nil {
		return err
	}

	base := scrollbar.Config{Clock: clk, Logger: logger}
	binding, err := page.Attach(cfg.Options(base))
	if err != nil {
		return fmt.Errorf("attach scrollbar: %w", err)
	}

	if headless {
		defer closeBinding(binding, logger)
		return runHeadless(page, binding, fake, frames, step, logger)
	}

	ui.NewViewer(page, binding, clk, logger).Run()
	return nil
}

func openPage(ctx context.Context, location, userAgent string, logger *slog.Logger) ([]byte, error) {
	if location == "" {
		return demoPage, nil
	}
	page, err := network.NewLoader(network.WithUserAgent(userAgent)).Load(ctx, location)
	if err != nil {
		return nil, err
	}
	logger.Debug("page fetched", "url", page.URL, "bytes", len(page.Content))
	return page.Content, nil
}

// runHeadless scrolls down by step each frame until the end of the
// content, then lets the scrollbar settle for the remaining frames.
func runHeadless(page *bootstrap.Page, binding *bootstrap.Binding, clk *clock.FakeClock, frames int, step float64, logger *slog.Logger) error {
	ctrl := binding.Controller()
	thumb := binding.Thumb()
	win := page.Window

	for i := 0; i < frames; i++ {
		if ctrl.Direction() == scrollbar.Horizontal {
			win.ScrollBy(step, 0)
		} else {
			win.ScrollBy(0, step)
		}

		clk.Advance(frameInterval)
		binding.Frame(float64(i) * float64(frameInterval/time.Millisecond))

		logger.Info("frame",
			"n", i,
			"scroll_x", win.ScrollX(),
			"scroll_y", win.ScrollY(),
			"transform", thumb.Style().GetPropertyValue("transform"),
			"thumb_length", thumb.Style().GetPropertyValue(ctrl.Direction().LengthProperty()),
			"visible", ctrl.Visible(),
		)
	}

	for _, err := range page.Runtime.Errors() {
		logger.Warn("script error during run", "error", err)
	}
	return nil
}

func closeBinding(binding *bootstrap.Binding, logger *slog.Logger) {
	if err := binding.Close(); err != nil {
		logger.Warn("closing scrollbar", "error", err)
	}
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return nil, fmt.Errorf("invalid --log-format %q (supported: text, json)", format)
}
