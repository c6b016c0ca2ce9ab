package jigsaw

import "testing"

func newPickFixture(t *testing.T) (*Session, *Camera, *Picker, []*PieceMesh) {
	t.Helper()
	s := newTestSession(t, 2, 2)
	meshes := NewPieceMeshes(s.Layout(), s.Pieces())
	cam := NewCamera(Rect{Width: 800, Height: 600})
	// Spread the pieces apart on the table.
	for i, p := range s.Pieces() {
		p.Position = Vec3{X: float64(i)*3 - 4.5, Y: 0, Z: 0.1}
	}
	return s, cam, NewPicker(meshes, s.Config().PieceThickness), meshes
}

func TestPickerHitsPieceUnderCursor(t *testing.T) {
	s, cam, pk, _ := newPickFixture(t)
	for _, p := range s.Pieces() {
		sx, sy, _, _ := cam.Project(p.Position)
		hit, ok := pk.Pick(cam.Ray(sx, sy))
		if !ok {
			t.Fatalf("missed piece %d", p.Index)
		}
		if hit.Handle != MeshHandle(p.Index+1) {
			t.Errorf("hit handle %d, want %d", hit.Handle, p.Index+1)
		}
		if !hit.HasPoint {
			t.Error("hit should carry a point")
		}
		wantZ := p.Position.Z + s.Config().PieceThickness/2
		if !approxEqual(hit.Point.Z, wantZ, camEpsilon) {
			t.Errorf("hit z = %v, want top face %v", hit.Point.Z, wantZ)
		}
	}
}

func TestPickerMiss(t *testing.T) {
	_, cam, pk, _ := newPickFixture(t)
	sx, sy, _, _ := cam.Project(Vec3{0, 5, 0})
	if _, ok := pk.Pick(cam.Ray(sx, sy)); ok {
		t.Error("expected a miss over empty table")
	}
}

func TestPickerNearestWins(t *testing.T) {
	s, cam, pk, _ := newPickFixture(t)
	low := s.Piece(0, 0)
	high := s.Piece(1, 1)
	low.Position = Vec3{0, 0, 0.1}
	high.Position = Vec3{0.2, 0.1, 0.5}

	sx, sy, _, _ := cam.Project(Vec3{0.1, 0.05, 0})
	hit, ok := pk.Pick(cam.Ray(sx, sy))
	if !ok || hit.Handle != MeshHandle(high.Index+1) {
		t.Errorf("hit = %+v, want the higher piece %d", hit, high.Index+1)
	}
}

func TestPickerTieGoesToLaterPiece(t *testing.T) {
	s, cam, pk, _ := newPickFixture(t)
	a := s.Piece(0, 1)
	b := s.Piece(1, 0)
	a.Position = Vec3{0, 0, 0.2}
	b.Position = Vec3{0, 0, 0.2}

	sx, sy, _, _ := cam.Project(Vec3{0, 0, 0})
	hit, ok := pk.Pick(cam.Ray(sx, sy))
	if !ok || hit.Handle != MeshHandle(b.Index+1) {
		t.Errorf("hit = %+v, want later piece %d", hit, b.Index+1)
	}
}

func TestPickerDragPoint(t *testing.T) {
	s, cam, pk, _ := newPickFixture(t)
	sx, sy, _, _ := cam.Project(Vec3{1, -1, 0.6 + s.Config().PieceThickness/2})
	pt, ok := pk.DragPoint(cam.Ray(sx, sy), 0.6)
	if !ok {
		t.Fatal("DragPoint missed")
	}
	if !approxEqual(pt.X, 1, camEpsilon) || !approxEqual(pt.Y, -1, camEpsilon) {
		t.Errorf("DragPoint = %v, want (1,-1)", pt)
	}
}
