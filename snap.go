package jigsaw

// SnapResult describes the outcome of dropping a piece.
type SnapResult struct {
	Locked bool
	// Anchor is the locked neighbor the piece snapped against, nil when it
	// snapped to its own home or did not lock.
	Anchor   *Piece
	Relation Adjacency
}

// adjacency reports how p relates to o on the grid. Relations are checked
// in a fixed priority: above, below, right, left.
func adjacency(p, o *Piece) Adjacency {
	switch {
	case p.Row == o.Row-1 && p.Col == o.Col:
		return AdjacencyAbove
	case p.Row == o.Row+1 && p.Col == o.Col:
		return AdjacencyBelow
	case p.Row == o.Row && p.Col == o.Col+1:
		return AdjacencyRight
	case p.Row == o.Row && p.Col == o.Col-1:
		return AdjacencyLeft
	}
	return AdjacencyNone
}

// idealPosition returns where p belongs next to o for the given relation.
func idealPosition(o *Piece, rel Adjacency, tileW, tileH, settleZ float64) Vec3 {
	v := o.original.WithZ(settleZ)
	switch rel {
	case AdjacencyAbove:
		v.Y += tileH
	case AdjacencyBelow:
		v.Y -= tileH
	case AdjacencyRight:
		v.X += tileW
	case AdjacencyLeft:
		v.X -= tileW
	}
	return v
}

// Snap decides the final placement of a released piece p. preDrag is p's
// position before it was grabbed.
//
// A drop within the threshold of p's own home locks it there. Otherwise the
// locked pieces are scanned in row-major order and the first one adjacent
// to p decides: p locks beside it when close enough, and the scan stops
// either way. A piece that does not lock goes back to preDrag at FloatZ.
func (s *Session) Snap(p *Piece, preDrag Vec3) SnapResult {
	threshold := s.layout.SnapThreshold(s.cfg)
	settleZ := s.cfg.SettleZ

	home := p.original.WithZ(settleZ)
	if p.Position.PlanarDist(home) < threshold {
		p.Position = home
		p.Locked = true
		return SnapResult{Locked: true}
	}

	for _, o := range s.pieces {
		if o == p || !o.Locked {
			continue
		}
		rel := adjacency(p, o)
		if rel == AdjacencyNone {
			continue
		}
		ideal := idealPosition(o, rel, s.layout.TileWidth, s.layout.TileHeight, settleZ)
		if p.Position.PlanarDist(ideal) < threshold {
			p.Position = ideal
			p.Locked = true
			return SnapResult{Locked: true, Anchor: o, Relation: rel}
		}
		break
	}

	p.Position = preDrag.WithZ(s.cfg.FloatZ)
	return SnapResult{}
}
