package jigsaw

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"
)

// Duration is a time.Duration that reads from JSON as either a Go duration
// string ("2s", "1500ms") or a number of milliseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var ms float64
	if err := json.Unmarshal(b, &ms); err != nil {
		return fmt.Errorf("duration must be a string or milliseconds: %w", err)
	}
	*d = Duration(time.Duration(ms * float64(time.Millisecond)))
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config holds the puzzle grid and the fixed layout constants. All lengths
// are in puzzle-local units.
type Config struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// PuzzleWidth is the assembled puzzle's width. Height follows the image
	// aspect ratio.
	PuzzleWidth float64 `json:"puzzleWidth"`
	// PieceThickness is the physical depth of a piece. A grabbed piece is
	// raised by twice this value.
	PieceThickness float64 `json:"pieceThickness"`

	// SpreadX and SpreadY scale the shuffle box relative to the puzzle's
	// width and height. SpreadZ is the depth range above FloatZ.
	SpreadX float64 `json:"spreadX"`
	SpreadY float64 `json:"spreadY"`
	SpreadZ float64 `json:"spreadZ"`

	// FloatZ is the depth an unlocked piece returns to after a failed drop.
	FloatZ float64 `json:"floatZ"`
	// SettleZ is the depth of a locked piece.
	SettleZ float64 `json:"settleZ"`

	// SnapDivisor divides the tile width to give the snap threshold.
	SnapDivisor float64 `json:"snapDivisor"`
	// Epsilon is the tolerance of the win check's position comparison.
	Epsilon float64 `json:"epsilon"`

	// ResetDelay is how long a misassembled puzzle stays on screen before
	// it is reshuffled.
	ResetDelay Duration `json:"resetDelay"`

	// Seed seeds the shuffle. Zero picks a random seed.
	Seed uint64 `json:"seed"`

	// Logger receives warnings. Nil uses a stderr logger prefixed "jigsaw: ".
	Logger *log.Logger `json:"-"`
}

// Configuration errors.
var (
	ErrInvalidGrid   = errors.New("jigsaw: rows and cols must be at least 1")
	ErrInvalidConfig = errors.New("jigsaw: invalid config")
)

// DefaultConfig returns the constants the game ships with.
func DefaultConfig() Config {
	return Config{
		Rows:           3,
		Cols:           4,
		PuzzleWidth:    4,
		PieceThickness: 0.05,
		SpreadX:        2.2,
		SpreadY:        2.2,
		SpreadZ:        0.4,
		FloatZ:         0.1,
		SettleZ:        0.025,
		SnapDivisor:    2,
		Epsilon:        0.001,
		ResetDelay:     Duration(2 * time.Second),
	}
}

// Validate reports the first problem with c, or nil.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("%w (got %dx%d)", ErrInvalidGrid, c.Rows, c.Cols)
	}
	switch {
	case c.PuzzleWidth <= 0:
		return fmt.Errorf("%w: puzzleWidth must be positive", ErrInvalidConfig)
	case c.PieceThickness < 0:
		return fmt.Errorf("%w: pieceThickness must not be negative", ErrInvalidConfig)
	case c.SnapDivisor <= 0:
		return fmt.Errorf("%w: snapDivisor must be positive", ErrInvalidConfig)
	case c.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon must be positive", ErrInvalidConfig)
	case c.SpreadX < 0 || c.SpreadY < 0 || c.SpreadZ < 0:
		return fmt.Errorf("%w: spread must not be negative", ErrInvalidConfig)
	case c.ResetDelay < 0:
		return fmt.Errorf("%w: resetDelay must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig parses a JSON config. Fields missing from the document keep
// their DefaultConfig values.
func LoadConfig(jsonData []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return Config{}, fmt.Errorf("jigsaw: failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// logger returns the configured logger or the package default.
func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return defaultLogger
}

var defaultLogger = log.New(os.Stderr, "jigsaw: ", log.LstdFlags)
