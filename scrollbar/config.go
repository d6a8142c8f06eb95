package scrollbar

import (
	"log/slog"
	"time"

	"github.com/chrisuehlinger/vibescroll/clock"
)

const (
	// DefaultFadeDuration is how long the scrollbar stays visible after the
	// thumb stops moving.
	DefaultFadeDuration = 200 * time.Millisecond

	// DefaultMinThumbLength is the thumb length floor of RefinedPolicy, in
	// pixels.
	DefaultMinThumbLength = 40
)

// Policy selects between the behaviours of the simple and the refined
// scrollbar.
type Policy struct {
	// MinThumbLength clamps the thumb length from below. Zero lets the
	// thumb shrink without limit on very long content.
	MinThumbLength float64

	// RecomputeOnFrame makes every frame compare the live extents with the
	// ones the geometry was computed from and recompute on change. Without
	// it geometry only follows OnResize.
	RecomputeOnFrame bool

	// StickyHidden reproduces the simple scrollbar's display handling:
	// recomputation never touches the container's display, and once a
	// frame has hidden the container nothing shows it again.
	StickyHidden bool
}

var (
	// SimplePolicy is the lightweight scrollbar without a thumb floor.
	SimplePolicy = Policy{StickyHidden: true}

	// RefinedPolicy clamps the thumb length and follows content size
	// changes that are not accompanied by a resize.
	RefinedPolicy = Policy{
		MinThumbLength:   DefaultMinThumbLength,
		RecomputeOnFrame: true,
	}
)

// Config is the construction input of a Controller.
type Config struct {
	// Container houses the thumb. It is hidden when there is nothing to
	// scroll and receives the data-visible attribute.
	Container Target

	// Thumb is the element whose length and transform are written.
	Thumb Element

	// Direction is "vertical" (the default when empty) or "horizontal".
	Direction string

	// ScrollDelegate, when set, performs scroll commands instead of the
	// host's native scrolling.
	ScrollDelegate ScrollDelegate

	// FadeDuration is how long the scrollbar stays visible after motion
	// stops. Zero disables fading and data-visible is never written.
	FadeDuration time.Duration

	Policy Policy

	// Clock drives the fade-out timer. Defaults to clock.Real().
	Clock clock.Clock

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a vertical, refined configuration with the default
// fade duration. Container and Thumb still have to be set.
func DefaultConfig() Config {
	return Config{
		Direction:    Vertical.String(),
		FadeDuration: DefaultFadeDuration,
		Policy:       RefinedPolicy,
	}
}

// validate checks cfg and returns the parsed direction.
func (cfg Config) validate() (Direction, error) {
	dir, err := ParseDirection(cfg.Direction)
	if err != nil {
		return dir, err
	}
	if cfg.Container == nil {
		return dir, &ConfigError{Field: "container", Err: ErrMissing}
	}
	if cfg.Thumb == nil {
		return dir, &ConfigError{Field: "thumb", Err: ErrMissing}
	}
	if cfg.FadeDuration < 0 {
		return dir, &ConfigError{Field: "fade duration", Value: cfg.FadeDuration, Err: ErrNegativeDuration}
	}
	if cfg.Policy.MinThumbLength < 0 {
		return dir, &ConfigError{Field: "min thumb length", Value: cfg.Policy.MinThumbLength, Err: ErrNegativeLength}
	}
	return dir, nil
}
