package jigsaw

import "math"

// Picker hit-tests picking rays against piece meshes.
type Picker struct {
	meshes    []*PieceMesh
	thickness float64
}

// NewPicker creates a picker over meshes for pieces of the given thickness.
func NewPicker(meshes []*PieceMesh, thickness float64) *Picker {
	return &Picker{meshes: meshes, thickness: thickness}
}

// Pick returns the nearest top face hit by r. When two faces are hit at the
// same distance the later-created piece wins, matching draw order.
func (pk *Picker) Pick(r Ray) (Hit, bool) {
	var (
		best  Hit
		found bool
		index = -1
	)
	for _, m := range pk.meshes {
		center, hw, hh := m.topFace(pk.thickness)
		pt, dist, ok := r.IntersectZ(center.Z)
		if !ok {
			continue
		}
		if math.Abs(pt.X-center.X) > hw || math.Abs(pt.Y-center.Y) > hh {
			continue
		}
		if found && (dist > best.Distance || (dist == best.Distance && m.piece.Index < index)) {
			continue
		}
		best = Hit{Handle: m.Handle, Point: pt, HasPoint: true, Distance: dist}
		index = m.piece.Index
		found = true
	}
	return best, found
}

// DragPoint returns where r crosses the top face plane of a piece held at
// height z.
func (pk *Picker) DragPoint(r Ray, z float64) (Vec3, bool) {
	pt, _, ok := r.IntersectZ(z + pk.thickness/2)
	return pt, ok
}
