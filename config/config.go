// Package config loads scrollbar settings from YAML.
//
// Example:
//
//	direction: vertical
//	variant: refined
//	fade_duration_ms: 200
//	min_thumb_length: 40
//	selectors:
//	  container: '[data-scrollbar="container"]'
//	  thumb: '[data-scrollbar="thumb"]'
//	window:
//	  width: 1024
//	  height: 768
//	delegate:
//	  kind: script
//	  global: lenis
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chrisuehlinger/vibescroll/bootstrap"
	"github.com/chrisuehlinger/vibescroll/scrollbar"
)

// Variant names.
const (
	VariantSimple  = "simple"
	VariantRefined = "refined"
)

// File is the on-disk configuration.
type File struct {
	// Direction is "vertical" or "horizontal".
	Direction string `yaml:"direction"`

	// Variant is "simple" or "refined".
	Variant string `yaml:"variant"`

	// FadeDurationMS is the fade-out delay in milliseconds. Absent means
	// 200; zero, null and false disable fading.
	FadeDurationMS *FadeMillis `yaml:"fade_duration_ms"`

	// MinThumbLength overrides the variant's thumb length floor.
	MinThumbLength *float64 `yaml:"min_thumb_length"`

	Selectors Selectors `yaml:"selectors"`
	Window    Window    `yaml:"window"`
	Delegate  Delegate  `yaml:"delegate"`
}

// FadeMillis is a fade-out delay in milliseconds. In YAML it is an
// integer or a boolean: false disables fading and true selects the
// default delay.
type FadeMillis int

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *FadeMillis) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!bool" {
		var on bool
		if err := value.Decode(&on); err != nil {
			return err
		}
		*m = 0
		if on {
			*m = defaultFade()
		}
		return nil
	}
	var ms int
	if err := value.Decode(&ms); err != nil {
		return err
	}
	*m = FadeMillis(ms)
	return nil
}

func defaultFade() FadeMillis {
	return FadeMillis(scrollbar.DefaultFadeDuration / time.Millisecond)
}

// Selectors locate the scrollbar elements in the page.
type Selectors struct {
	Container string `yaml:"container"`
	Thumb     string `yaml:"thumb"`
}

// Window is the initial viewport size in pixels.
type Window struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Delegate selects who performs scroll commands.
type Delegate struct {
	// Kind is "native", "smooth" or "script".
	Kind string `yaml:"kind"`
	// Global names the page script object for the script kind.
	Global string `yaml:"global"`
	// Lerp is the smooth kind's per-frame easing factor.
	Lerp float64 `yaml:"lerp"`
}

// Default returns the configuration used when no file is given.
func Default() File {
	fade := defaultFade()
	return File{
		Direction:      scrollbar.Vertical.String(),
		Variant:        VariantRefined,
		FadeDurationMS: &fade,
		Selectors: Selectors{
			Container: bootstrap.DefaultContainerSelector,
			Thumb:     bootstrap.DefaultThumbSelector,
		},
		Window:   Window{Width: 1024, Height: 768},
		Delegate: Delegate{Kind: string(bootstrap.DelegateNative)},
	}
}

// Load reads and validates a configuration file. Settings the file omits
// keep their defaults.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read config file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates YAML on top of Default. Unknown keys are
// rejected.
func Parse(data []byte) (File, error) {
	f := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if f.FadeDurationMS == nil {
		// Only an explicit "fade_duration_ms: null" clears the default.
		var off FadeMillis
		f.FadeDurationMS = &off
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Validate checks field values.
func (f File) Validate() error {
	if _, err := scrollbar.ParseDirection(f.Direction); err != nil {
		return err
	}
	switch f.Variant {
	case VariantSimple, VariantRefined:
	default:
		return fmt.Errorf("unknown variant %q (supported: simple, refined)", f.Variant)
	}
	if f.FadeDurationMS != nil && *f.FadeDurationMS < 0 {
		return &scrollbar.ConfigError{Field: "fade_duration_ms", Value: int(*f.FadeDurationMS), Err: scrollbar.ErrNegativeDuration}
	}
	if f.MinThumbLength != nil && *f.MinThumbLength < 0 {
		return &scrollbar.ConfigError{Field: "min_thumb_length", Value: *f.MinThumbLength, Err: scrollbar.ErrNegativeLength}
	}
	if f.Window.Width <= 0 || f.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %vx%v", f.Window.Width, f.Window.Height)
	}
	kind, err := bootstrap.ParseDelegateKind(f.Delegate.Kind)
	if err != nil {
		return err
	}
	if kind == bootstrap.DelegateScript && f.Delegate.Global == "" {
		return fmt.Errorf("delegate: global is required for the script kind")
	}
	if f.Delegate.Lerp < 0 || f.Delegate.Lerp > 1 {
		return fmt.Errorf("delegate: lerp must be within [0, 1], got %v", f.Delegate.Lerp)
	}
	return nil
}

// Apply copies the direction, fade duration and variant policy into cfg.
func (f File) Apply(cfg *scrollbar.Config) {
	cfg.Direction = f.Direction
	if f.FadeDurationMS != nil {
		cfg.FadeDuration = time.Duration(*f.FadeDurationMS) * time.Millisecond
	}
	if f.Variant == VariantSimple {
		cfg.Policy = scrollbar.SimplePolicy
	} else {
		cfg.Policy = scrollbar.RefinedPolicy
	}
	if f.MinThumbLength != nil {
		cfg.Policy.MinThumbLength = *f.MinThumbLength
	}
}

// Options builds bootstrap options from f on top of base.
func (f File) Options(base scrollbar.Config) bootstrap.Options {
	f.Apply(&base)
	kind, _ := bootstrap.ParseDelegateKind(f.Delegate.Kind)
	return bootstrap.Options{
		ContainerSelector: f.Selectors.Container,
		ThumbSelector:     f.Selectors.Thumb,
		Scrollbar:         base,
		Delegate:          kind,
		DelegateGlobal:    f.Delegate.Global,
		Lerp:              f.Delegate.Lerp,
	}
}
