package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lao-tseu-is-alive/go-boids-trails/internal/flock"
	"github.com/lao-tseu-is-alive/go-boids-trails/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids-trails/pkg/ui"
)

const maxPerceptionDelay = 10

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

// Game drives the step/draw alternation through Ebiten: Update advances the
// flock by exactly one tick, Draw reads positions and trails and never
// mutates the state.
type Game struct {
	state *flock.FlockState

	paused     bool
	showTrails bool

	sliderRange *ui.Slider
	checkTrails *ui.Checkbox
	btnReset    *ui.Button
}

func NewGame(state *flock.FlockState) *Game {
	g := &Game{state: state}

	g.sliderRange = &ui.Slider{
		Label: "Vis Range",
		Value: state.VisRange(),
		Min:   10, Max: 300,
		X: 10, Y: 40, W: 160, H: 14,
	}
	g.checkTrails = ui.NewCheckbox(10, 64, "Trails", false)
	g.btnReset = ui.NewButton(10, 90, 70, 22, "Reset", state.Reset)

	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.checkTrails.Value = !g.checkTrails.Value
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.state.SetWind(!g.state.WindEnabled())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		if d := g.state.PerceptionDelay(); d < maxPerceptionDelay {
			g.state.SetPerceptionDelay(d + 1)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		if d := g.state.PerceptionDelay(); d > 0 {
			g.state.SetPerceptionDelay(d - 1)
		}
	}

	g.sliderRange.Update()
	g.checkTrails.Update()
	g.btnReset.Update()

	g.state.SetVisRange(g.sliderRange.Value)
	g.showTrails = g.checkTrails.Value

	if g.paused {
		return nil
	}
	return g.state.Step()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 10, B: 30, A: 255})

	halfW := g.state.Width() / 2
	halfH := g.state.Height() / 2

	for _, b := range g.state.Boids() {
		if g.showTrails {
			drawTrail(screen, b.Trail(), halfW, halfH)
		}
		if d := g.state.PerceptionDelay(); d > 0 {
			pos, _ := b.Delayed(d)
			vector.FillCircle(screen, float32(pos.X), float32(pos.Y), 2,
				color.RGBA{R: 255, G: 100, B: 100, A: 255}, true)
		}
		drawBoid(screen, b)
	}

	g.sliderRange.Draw(screen)
	g.checkTrails.Draw(screen)
	g.btnReset.Draw(screen)

	msg := fmt.Sprintf("tick %d  boids %d  delay %d  range %.0f",
		g.state.Tick(), g.state.NumBoids(), g.state.PerceptionDelay(), g.state.VisRange())
	if g.state.WindEnabled() {
		msg += "  wind on"
	}
	if g.paused {
		msg += "  [paused]"
	}
	ebitenutil.DebugPrint(screen, msg)
}

// drawTrail renders the position history as a polyline that fades toward the
// oldest entry. Segments spanning more than half the arena are wrap seams,
// not real motion, and are skipped.
func drawTrail(screen *ebiten.Image, points []geometry.Vector2D, halfW, halfH float64) {
	n := len(points)
	for i := 1; i < n; i++ {
		prev, curr := points[i-1], points[i]
		if math.Abs(curr.X-prev.X) > halfW || math.Abs(curr.Y-prev.Y) > halfH {
			continue
		}
		fade := float64(i) / float64(n)
		clr := color.RGBA{
			R: uint8(60 * fade),
			G: uint8(180 * fade),
			B: uint8(255 * fade),
			A: 255,
		}
		vector.StrokeLine(screen,
			float32(prev.X), float32(prev.Y),
			float32(curr.X), float32(curr.Y),
			1, clr, true)
	}
}

// drawBoid renders a boid as a small triangle pointing along its velocity.
func drawBoid(screen *ebiten.Image, b *flock.Boid) {
	angle := b.Vel.Angle()

	tipX := b.Pos.X + math.Cos(angle)*6
	tipY := b.Pos.Y + math.Sin(angle)*6
	rightX := b.Pos.X + math.Cos(angle+2.5)*5
	rightY := b.Pos.Y + math.Sin(angle+2.5)*5
	leftX := b.Pos.X + math.Cos(angle-2.5)*5
	leftY := b.Pos.Y + math.Sin(angle-2.5)*5

	vertex := func(x, y float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: 0.35, ColorG: 0.55, ColorB: 0.95, ColorA: 1,
		}
	}
	vertices := []ebiten.Vertex{
		vertex(tipX, tipY),
		vertex(rightX, rightY),
		vertex(leftX, leftY),
	}
	indices := []uint16{0, 1, 2}

	screen.DrawTriangles(vertices, indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.state.Width()), int(g.state.Height())
}
