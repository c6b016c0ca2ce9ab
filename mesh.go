package jigsaw

import (
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	sideShade  = 0.55 // brightness of a piece's edge faces
	ghostAlpha = 0.18 // opacity of the assembled-image hint on the table
)

// PieceMesh is the renderable box for one piece: a textured top face and
// four edge faces that give it thickness. The mesh holds only a handle;
// the Controller maps the handle back to the piece.
type PieceMesh struct {
	Handle MeshHandle
	piece  *Piece
	src    image.Rectangle

	// settle is a draw-only offset from the piece's position. It is eased to
	// zero after a drop so the piece glides into place.
	settle Vec3
}

// NewPieceMeshes builds one mesh per piece. Handles start at 1 so the zero
// handle never names a piece.
func NewPieceMeshes(layout *Layout, pieces []*Piece) []*PieceMesh {
	meshes := make([]*PieceMesh, len(pieces))
	for i, p := range pieces {
		x0, y0, x1, y1 := layout.SourceRect(p.Row, p.Col)
		meshes[i] = &PieceMesh{
			Handle: MeshHandle(i + 1),
			piece:  p,
			src:    image.Rect(x0, y0, x1, y1),
		}
	}
	return meshes
}

// topFace returns the mesh's top face in puzzle-local space: center and
// half extents, at the face's height.
func (m *PieceMesh) topFace(thickness float64) (center Vec3, hw, hh float64) {
	p := m.piece
	return p.Position.Add(Vec3{Z: thickness / 2}), p.TileWidth / 2, p.TileHeight / 2
}

// drawPosition is where the piece is drawn this frame.
func (m *PieceMesh) drawPosition() Vec3 {
	return m.piece.Position.Add(m.settle)
}

// corners returns the four corners of the drawn face at height z, clockwise
// from top-left as seen from above.
func (m *PieceMesh) corners(z float64) [4]Vec3 {
	pos := m.drawPosition()
	hw, hh := m.piece.TileWidth/2, m.piece.TileHeight/2
	return [4]Vec3{
		{pos.X - hw, pos.Y + hh, z},
		{pos.X + hw, pos.Y + hh, z},
		{pos.X + hw, pos.Y - hh, z},
		{pos.X - hw, pos.Y - hh, z},
	}
}

// meshBatch accumulates projected triangles for a single DrawTriangles32
// call. Every face samples the same source image.
type meshBatch struct {
	verts []ebiten.Vertex
	inds  []uint32
}

func (b *meshBatch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// appendQuad projects four corners and appends two triangles mapping them
// to the source quad src (same corner order). Quads with a corner behind
// the camera are dropped.
func (b *meshBatch) appendQuad(cam *Camera, q [4]Vec3, src [4][2]float32, tint Color) {
	var screen [4][2]float32
	for i, v := range q {
		sx, sy, _, ok := cam.Project(v)
		if !ok {
			return
		}
		screen[i] = [2]float32{float32(sx), float32(sy)}
	}

	// Premultiply the tint.
	cr := float32(tint.R * tint.A)
	cg := float32(tint.G * tint.A)
	cb := float32(tint.B * tint.A)
	ca := float32(tint.A)

	base := uint32(len(b.verts))
	for i := range q {
		b.verts = append(b.verts, ebiten.Vertex{
			DstX: screen[i][0], DstY: screen[i][1],
			SrcX: src[i][0], SrcY: src[i][1],
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	// Two triangles: TL-TR-BR, TL-BR-BL
	b.inds = append(b.inds,
		base+0, base+1, base+2,
		base+0, base+2, base+3,
	)
}

// appendMesh appends the edge faces then the top face of m. Drawing the
// edges first lets the top face cover the ones turned away from the camera.
func (b *meshBatch) appendMesh(cam *Camera, m *PieceMesh, thickness float64) {
	p := m.piece
	z := m.drawPosition().Z
	top := m.corners(z + thickness/2)

	x0, y0 := float32(m.src.Min.X), float32(m.src.Min.Y)
	x1, y1 := float32(m.src.Max.X), float32(m.src.Max.Y)
	topSrc := [4][2]float32{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}

	if thickness > 0 {
		bottom := m.corners(z - thickness/2)
		shade := Color{p.Tint.R * sideShade, p.Tint.G * sideShade, p.Tint.B * sideShade, p.Tint.A}
		for i := 0; i < 4; i++ {
			j := (i + 1) % 4
			// Edge faces reuse the texture along the matching top edge.
			src := [4][2]float32{topSrc[i], topSrc[j], topSrc[j], topSrc[i]}
			b.appendQuad(cam, [4]Vec3{top[i], top[j], bottom[j], bottom[i]}, src, shade)
		}
	}
	b.appendQuad(cam, top, topSrc, p.Tint)
}

// appendGhost appends the faint assembled picture at z = 0 so players can
// see where the puzzle goes.
func (b *meshBatch) appendGhost(cam *Camera, layout *Layout) {
	hw, hh := layout.Width/2, layout.Height/2
	q := [4]Vec3{{-hw, hh, 0}, {hw, hh, 0}, {hw, -hh, 0}, {-hw, -hh, 0}}
	w, h := float32(layout.ImageWidth), float32(layout.ImageHeight)
	src := [4][2]float32{{0, 0}, {w, 0}, {w, h}, {0, h}}
	b.appendQuad(cam, q, src, Color{1, 1, 1, ghostAlpha})
}

// sortMeshes orders meshes back to front: lower pieces first, ties broken
// by creation index.
func sortMeshes(meshes []*PieceMesh) {
	sort.SliceStable(meshes, func(i, j int) bool {
		za, zb := meshes[i].drawPosition().Z, meshes[j].drawPosition().Z
		if za != zb {
			return za < zb
		}
		return meshes[i].piece.Index < meshes[j].piece.Index
	})
}

// drawPieces renders the ghost image and every piece in one draw call.
func drawPieces(target, src *ebiten.Image, cam *Camera, layout *Layout,
	meshes []*PieceMesh, thickness float64, batch *meshBatch) {
	batch.reset()
	batch.appendGhost(cam, layout)
	sortMeshes(meshes)
	for _, m := range meshes {
		batch.appendMesh(cam, m, thickness)
	}
	if len(batch.inds) == 0 {
		return
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(batch.verts, batch.inds, src, &triOp)
}
