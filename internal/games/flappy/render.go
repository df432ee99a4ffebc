package flappy

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/head-flappy/internal/config"
	"github.com/vovakirdan/head-flappy/internal/core"
	"github.com/vovakirdan/head-flappy/internal/theme"
)

// Visual characters for rendering
const (
	ObstacleChar    = '█'
	ObstacleCapTop  = '▄'
	ObstacleCapBase = '▀'
	BirdChar        = '█'
	BirdEyeChar     = '•'
	BirdBeakChar    = '▶'
	GlowChar        = '░'
)

// Theme-independent bird colors
const (
	birdBody  core.Color = 226
	birdGlow  core.Color = 229
	birdEye   core.Color = core.ColorBlack
	birdBeak  core.Color = core.ColorOrange
	bannerBg  core.Color = 235
	bannerFg  core.Color = core.ColorBrightWhite
	bannerHot core.Color = core.ColorBrightRed
)

// particleCount is the number of decorative motif particles per frame.
const particleCount = 40

// idleHoverPeriod is the idle bob speed in ticks per radian (about 300ms at 60 FPS).
const idleHoverPeriod = 18.0

// idleHoverAmplitude is the idle bob height in world units.
const idleHoverAmplitude = 5.0

type particle struct {
	x, y  float64 // normalized [0,1) surface coordinates
	speed float64
	color core.Color
}

// Renderer draws a Snapshot onto a Screen. It never mutates simulation
// state. Decorative motifs use the renderer's own RNG, so cosmetic
// randomness never affects obstacle placement.
type Renderer struct {
	cfg       config.Config
	rng       *rand.Rand
	particles []particle
	motif     theme.Motif
}

// NewRenderer creates a renderer; seed only drives decorative motifs.
func NewRenderer(cfg config.Config, seed int64) *Renderer {
	return &Renderer{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// viewport maps world units to cells.
type viewport struct {
	sx, sy float64
}

func (v viewport) rect(b core.Box) core.Rect {
	x0 := int(math.Floor(b.X * v.sx))
	y0 := int(math.Floor(b.Y * v.sy))
	x1 := int(math.Ceil(b.Right() * v.sx))
	y1 := int(math.Ceil(b.Bottom() * v.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// Render draws the full frame for snap using theme th.
func (r *Renderer) Render(dst *core.Screen, snap Snapshot, th theme.Descriptor) {
	if dst.Empty() {
		return
	}
	vp := viewport{
		sx: float64(dst.Width()) / r.cfg.Playfield.Width,
		sy: float64(dst.Height()) / r.cfg.Playfield.Height,
	}

	dst.Clear()
	r.drawBackground(dst, th)
	r.drawMotifs(dst, th)

	for _, o := range snap.Obstacles {
		r.drawObstacle(dst, vp, o, th)
	}

	birdY := snap.BirdY
	if snap.Phase == PhaseIdle {
		birdY += math.Sin(float64(snap.Ticks)/idleHoverPeriod) * idleHoverAmplitude
	}
	r.drawBird(dst, vp, birdY)

	dst.DrawTextCentered(0, fmt.Sprintf(" %d ", snap.Score), th.Text)

	switch snap.Phase {
	case PhaseIdle:
		drawCenteredMessage(dst, "Lift your head to start!", "(or press space)", th.Text)
	case PhaseEnded:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d", snap.Score), bannerHot)
	}
}

// drawBackground paints the theme's sky gradient, one band per row.
func (r *Renderer) drawBackground(dst *core.Screen, th theme.Descriptor) {
	h := dst.Height()
	for y := 0; y < h; y++ {
		bg := th.SkyAt(y, h)
		for x := 0; x < dst.Width(); x++ {
			dst.SetBg(x, y, bg)
		}
	}
}

// drawMotifs moves and draws the decorative particles for the theme's motif.
func (r *Renderer) drawMotifs(dst *core.Screen, th theme.Descriptor) {
	if th.Motif == theme.MotifNone || len(th.MotifColors) == 0 {
		r.particles = r.particles[:0]
		return
	}
	if th.Motif != r.motif || len(r.particles) == 0 {
		r.seedParticles(th)
	}

	w, h := float64(dst.Width()), float64(dst.Height())
	for i := range r.particles {
		p := &r.particles[i]
		var ch rune
		switch th.Motif {
		case theme.MotifStars:
			// Twinkle in place
			switch r.rng.Intn(6) {
			case 0:
				ch = '+'
			case 1:
				ch = ' '
			default:
				ch = '·'
			}
		case theme.MotifSnow:
			p.y += p.speed
			p.x += (r.rng.Float64() - 0.5) * 0.004
			ch = '*'
		case theme.MotifBubbles:
			p.y -= p.speed
			p.x += (r.rng.Float64() - 0.5) * 0.003
			ch = 'o'
			if p.speed > 0.008 {
				ch = '°'
			}
		case theme.MotifPetals:
			p.y += p.speed
			p.x -= p.speed * 0.6
			ch = '✿'
		}
		p.x = wrapUnit(p.x)
		p.y = wrapUnit(p.y)
		if ch != ' ' {
			dst.SetColored(int(p.x*w), int(p.y*h), ch, p.color)
		}
	}
}

func (r *Renderer) seedParticles(th theme.Descriptor) {
	r.motif = th.Motif
	r.particles = r.particles[:0]
	for i := 0; i < particleCount; i++ {
		r.particles = append(r.particles, particle{
			x:     r.rng.Float64(),
			y:     r.rng.Float64(),
			speed: 0.002 + r.rng.Float64()*0.008,
			color: th.MotifColors[r.rng.Intn(len(th.MotifColors))],
		})
	}
}

func wrapUnit(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v++
	}
	return v
}

// drawObstacle renders both solid segments and their cap accents.
func (r *Renderer) drawObstacle(dst *core.Screen, vp viewport, o Obstacle, th theme.Descriptor) {
	width := r.cfg.Obstacles.Width
	pfH := r.cfg.Playfield.Height

	if o.GapTop > 0 {
		top := vp.rect(o.TopBox(width))
		dst.DrawRect(top, ObstacleChar, th.Obstacle)
		// Cap on the top segment, one cell wider on each side
		dst.DrawHLine(top.X-1, top.Bottom()-1, top.W+2, ObstacleCapTop, th.ObstacleCap)
	}

	if o.GapBottom() < pfH {
		bottom := vp.rect(o.BottomBox(width, pfH))
		dst.DrawRect(bottom, ObstacleChar, th.Obstacle)
		dst.DrawHLine(bottom.X-1, bottom.Y, bottom.W+2, ObstacleCapBase, th.ObstacleCap)
	}
}

// drawBird renders the bird with a glow halo, an eye and a beak.
func (r *Renderer) drawBird(dst *core.Screen, vp viewport, y float64) {
	body := vp.rect(core.NewBox(r.cfg.Bird.X, y, r.cfg.Bird.Size, r.cfg.Bird.Size))

	for gy := body.Y - 1; gy <= body.Bottom(); gy++ {
		for gx := body.X - 1; gx <= body.Right(); gx++ {
			if !body.Contains(gx, gy) {
				dst.SetColored(gx, gy, GlowChar, birdGlow)
			}
		}
	}

	dst.DrawRect(body, BirdChar, birdBody)

	if body.W >= 2 {
		dst.SetCell(body.Right()-1, body.Y, core.Cell{Rune: BirdEyeChar, Fg: birdEye, Bg: birdBody})
	}
	dst.SetColored(body.Right(), body.Y+body.H/2, BirdBeakChar, birdBeak)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, titleColor core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.SetCell(x, y, core.Cell{Rune: ' ', Fg: bannerFg, Bg: bannerBg})
		}
	}
	dst.DrawBox(box, bannerFg)

	dst.DrawTextCentered(box.Y+1, title, titleColor)
	dst.DrawTextCentered(box.Y+3, subtitle, bannerFg)
}
