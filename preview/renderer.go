package preview

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/henhouse"
)

// Sprite is one projected square queued for drawing.
type Sprite struct {
	X, Y  float32
	Size  float32
	Depth float32
	Color color.RGBA
}

// Renderer is a henhouse.Renderer that draws every submitted entity as a
// depth-scaled square. It stands in for a mesh pipeline while tuning
// behaviors.
type Renderer struct {
	Width, Height int
	// Palette colors entities by kind. Kinds missing from it are skipped.
	Palette map[henhouse.Kind]color.RGBA
	// Skip names entities never drawn, such as terrain covering the view.
	Skip map[string]bool
	// PixelsPerUnit scales sprite size at unit depth.
	PixelsPerUnit float32

	sprites []Sprite
}

// NewRenderer returns a Renderer with the standard palette.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		Width:  width,
		Height: height,
		Palette: map[henhouse.Kind]color.RGBA{
			henhouse.KindPlayer:     {240, 200, 60, 255},
			henhouse.KindPatrol:     {120, 130, 160, 255},
			henhouse.KindGuardian:   {170, 90, 40, 255},
			henhouse.KindPrey:       {245, 245, 235, 255},
			henhouse.KindProjectile: {255, 140, 0, 255},
			henhouse.KindMarker:     {230, 30, 30, 255},
			henhouse.KindProp:       {90, 150, 80, 255},
			henhouse.KindEffect:     {255, 255, 255, 255},
		},
		Skip: map[string]bool{
			henhouse.NameGround: true,
			henhouse.NameSkybox: true,
		},
		PixelsPerUnit: float32(height),
	}
}

// SubmitForDraw projects e, or each of its particles, into the sprite queue.
func (r *Renderer) SubmitForDraw(e *henhouse.Entity, cam henhouse.CameraState) {
	if r.Skip[e.Name] {
		return
	}
	clr, ok := r.Palette[e.Kind]
	if !ok {
		return
	}
	vp := cam.ViewProjection()

	if em := e.Emitter; em != nil {
		world := em.Config().WorldSpace
		origin := em.Origin()
		for _, p := range em.Particles() {
			pos := p.Position
			if !world {
				pos = origin.Add(pos)
			}
			tint := color.RGBA{
				R: uint8(p.Tint.R * 255),
				G: uint8(p.Tint.G * 255),
				B: uint8(p.Tint.B * 255),
				A: uint8(p.Alpha * 255),
			}
			r.queue(vp, pos, p.Scale, tint)
		}
		return
	}

	s := e.Scale
	r.queue(vp, e.WorldPosition(), max(s[0], s[1], s[2]), clr)
}

func (r *Renderer) queue(vp mgl32.Mat4, pos mgl32.Vec3, size float32, clr color.RGBA) {
	x, y, w, ok := Project(vp, pos, r.Width, r.Height)
	if !ok {
		return
	}
	px := max(size*r.PixelsPerUnit/w, 1)
	r.sprites = append(r.sprites, Sprite{X: x, Y: y, Size: px, Depth: w, Color: clr})
}

// Sprites returns the queued sprites. The slice is reused across frames.
func (r *Renderer) Sprites() []Sprite {
	return r.sprites
}

// Flush draws the queued sprites far to near and empties the queue.
func (r *Renderer) Flush(screen *ebiten.Image) {
	sort.SliceStable(r.sprites, func(i, j int) bool {
		return r.sprites[i].Depth > r.sprites[j].Depth
	})
	for _, s := range r.sprites {
		half := s.Size / 2
		vector.DrawFilledRect(screen, s.X-half, s.Y-half, s.Size, s.Size, s.Color, false)
	}
	r.sprites = r.sprites[:0]
}
