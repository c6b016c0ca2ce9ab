package jigsaw

import (
	"image"
	"testing"
)

func TestNewPieceMeshes(t *testing.T) {
	s := newTestSession(t, 2, 3)
	meshes := NewPieceMeshes(s.Layout(), s.Pieces())
	if len(meshes) != 6 {
		t.Fatalf("len = %d, want 6", len(meshes))
	}
	for i, m := range meshes {
		if m.Handle != MeshHandle(i+1) {
			t.Errorf("mesh %d handle = %d, want %d", i, m.Handle, i+1)
		}
		if m.piece != s.Pieces()[i] {
			t.Errorf("mesh %d renders the wrong piece", i)
		}
	}
	// 200x200 image, 3 columns: the middle top tile spans x 66..133.
	if got, want := meshes[1].src, image.Rect(66, 0, 133, 100); got != want {
		t.Errorf("src = %v, want %v", got, want)
	}
}

func TestMeshCorners(t *testing.T) {
	p := &Piece{TileWidth: 2, TileHeight: 1, Position: Vec3{1, 1, 0}}
	m := &PieceMesh{piece: p}
	got := m.corners(0.5)
	want := [4]Vec3{{0, 1.5, 0.5}, {2, 1.5, 0.5}, {2, 0.5, 0.5}, {0, 0.5, 0.5}}
	if got != want {
		t.Errorf("corners = %v, want %v", got, want)
	}
}

func TestMeshCornersFollowSettleOffset(t *testing.T) {
	p := &Piece{TileWidth: 2, TileHeight: 1, Position: Vec3{1, 1, 0}}
	m := &PieceMesh{piece: p, settle: Vec3{0.5, -1, 0.2}}
	got := m.corners(0.5)
	want := [4]Vec3{{0.5, 0.5, 0.5}, {2.5, 0.5, 0.5}, {2.5, -0.5, 0.5}, {0.5, -0.5, 0.5}}
	if got != want {
		t.Errorf("corners = %v, want %v", got, want)
	}
	if p.Position != (Vec3{1, 1, 0}) {
		t.Error("settle offset must not move the piece")
	}
}

func TestSortMeshesUsesDrawnDepth(t *testing.T) {
	low := &PieceMesh{piece: &Piece{Index: 0, Position: Vec3{Z: 0.1}}, settle: Vec3{Z: 0.3}}
	high := &PieceMesh{piece: &Piece{Index: 1, Position: Vec3{Z: 0.2}}}
	meshes := []*PieceMesh{low, high}
	sortMeshes(meshes)
	if meshes[0] != high {
		t.Error("a piece still settling from above should draw last")
	}
}

func TestMeshBatchAppendMesh(t *testing.T) {
	tests := []struct {
		name      string
		thickness float64
		wantVerts int
	}{
		{"box", 0.05, 20},
		{"flat", 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 1, 1)
			meshes := NewPieceMeshes(s.Layout(), s.Pieces())
			cam := NewCamera(Rect{Width: 800, Height: 600})
			var b meshBatch
			b.appendMesh(cam, meshes[0], tt.thickness)
			if len(b.verts) != tt.wantVerts {
				t.Errorf("verts = %d, want %d", len(b.verts), tt.wantVerts)
			}
			if len(b.inds) != tt.wantVerts/4*6 {
				t.Errorf("inds = %d, want %d", len(b.inds), tt.wantVerts/4*6)
			}
		})
	}
}

func TestMeshBatchDropsQuadBehindCamera(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	var b meshBatch
	q := [4]Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, cam.Distance + 1}, {0, 1, 0}}
	b.appendQuad(cam, q, [4][2]float32{}, ColorWhite)
	if len(b.verts) != 0 {
		t.Errorf("verts = %d, want 0", len(b.verts))
	}
}

func TestMeshBatchPremultipliesTint(t *testing.T) {
	s := newTestSession(t, 1, 1)
	cam := NewCamera(Rect{Width: 800, Height: 600})
	var b meshBatch
	b.appendGhost(cam, s.Layout())
	if len(b.verts) != 4 {
		t.Fatalf("verts = %d, want 4", len(b.verts))
	}
	v := b.verts[0]
	if v.ColorA != ghostAlpha || v.ColorR != ghostAlpha {
		t.Errorf("color = (%v, %v), want premultiplied %v", v.ColorR, v.ColorA, float32(ghostAlpha))
	}
	if v.SrcX != 0 || v.SrcY != 0 || b.verts[2].SrcX != 200 || b.verts[2].SrcY != 200 {
		t.Error("ghost should sample the whole image")
	}

	b.reset()
	if len(b.verts) != 0 || len(b.inds) != 0 {
		t.Error("reset should empty the batch")
	}
}

func TestSortMeshes(t *testing.T) {
	s := newTestSession(t, 2, 2)
	meshes := NewPieceMeshes(s.Layout(), s.Pieces())
	zs := []float64{0.3, 0.1, 0.3, 0.2}
	for i, p := range s.Pieces() {
		p.Position.Z = zs[i]
	}
	sortMeshes(meshes)
	want := []int{1, 3, 0, 2}
	for i, m := range meshes {
		if m.piece.Index != want[i] {
			t.Errorf("position %d holds piece %d, want %d", i, m.piece.Index, want[i])
		}
	}
}
