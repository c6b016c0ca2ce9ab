package jigsaw

import (
	"fmt"
	"math/rand/v2"
)

// Piece is one rectangular tile of the source image.
type Piece struct {
	// Index is the row-major creation index.
	Index    int
	Row, Col int

	TileWidth, TileHeight float64

	// Position is the piece's current center. It changes while the piece is
	// dragged, shuffled or snapped.
	Position Vec3
	// Locked is set once the piece snaps into a correct position and stays
	// set until the next shuffle.
	Locked bool

	// Tint multiplies the piece's texture when drawn.
	Tint Color

	original Vec3
}

// Original returns the piece's assembled center at z = 0.
func (p *Piece) Original() Vec3 {
	return p.original
}

// Layout is the puzzle geometry derived from the image size and the grid.
// It is computed once after the image loads and never changes.
type Layout struct {
	Rows, Cols int

	// Width and Height are the assembled puzzle's size. Height preserves the
	// image aspect ratio.
	Width, Height float64

	TileWidth, TileHeight float64

	// ImageWidth and ImageHeight are the source image's pixel size.
	ImageWidth, ImageHeight int
}

// NewLayout computes the layout for an image of imageW x imageH pixels cut
// into cfg.Rows x cfg.Cols tiles.
func NewLayout(imageW, imageH int, cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if imageW <= 0 || imageH <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, imageW, imageH)
	}
	w := cfg.PuzzleWidth
	h := w * float64(imageH) / float64(imageW)
	return &Layout{
		Rows:        cfg.Rows,
		Cols:        cfg.Cols,
		Width:       w,
		Height:      h,
		TileWidth:   w / float64(cfg.Cols),
		TileHeight:  h / float64(cfg.Rows),
		ImageWidth:  imageW,
		ImageHeight: imageH,
	}, nil
}

// OriginalPosition returns the center of tile (row, col). The puzzle is
// centered on the origin and row 0 is the top row.
func (l *Layout) OriginalPosition(row, col int) Vec3 {
	return Vec3{
		X: -l.Width/2 + l.TileWidth*(float64(col)+0.5),
		Y: l.Height/2 - l.TileHeight*(float64(row)+0.5),
	}
}

// SourceRect returns the pixel rectangle of tile (row, col) in the source
// image as x0, y0, x1, y1.
func (l *Layout) SourceRect(row, col int) (x0, y0, x1, y1 int) {
	x0 = col * l.ImageWidth / l.Cols
	x1 = (col + 1) * l.ImageWidth / l.Cols
	y0 = row * l.ImageHeight / l.Rows
	y1 = (row + 1) * l.ImageHeight / l.Rows
	return
}

// Pieces creates Rows x Cols pieces in row-major order, each resting at its
// original position.
func (l *Layout) Pieces() []*Piece {
	pieces := make([]*Piece, 0, l.Rows*l.Cols)
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			orig := l.OriginalPosition(r, c)
			pieces = append(pieces, &Piece{
				Index:      len(pieces),
				Row:        r,
				Col:        c,
				TileWidth:  l.TileWidth,
				TileHeight: l.TileHeight,
				Position:   orig,
				Tint:       ColorWhite,
				original:   orig,
			})
		}
	}
	return pieces
}

// SnapThreshold returns the planar distance within which a drop counts.
func (l *Layout) SnapThreshold(cfg Config) float64 {
	return (l.Width / float64(l.Cols)) / cfg.SnapDivisor
}

// Shuffle scatters every piece uniformly inside the spread box and unlocks
// it. Overlaps are allowed.
func (l *Layout) Shuffle(pieces []*Piece, cfg Config, rng *rand.Rand) {
	halfX := l.Width * cfg.SpreadX / 2
	halfY := l.Height * cfg.SpreadY / 2
	for _, p := range pieces {
		p.Position = Vec3{
			X: uniform(rng, -halfX, halfX),
			Y: uniform(rng, -halfY, halfY),
			Z: uniform(rng, cfg.FloatZ, cfg.FloatZ+cfg.SpreadZ),
		}
		p.Locked = false
		p.Tint = ColorWhite
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
