// Package render draws the world through the camera rig.
package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var (
	groundColor   = color.NRGBA{R: 0xc8, G: 0xa8, B: 0x6c, A: 0xff}
	gridColor     = color.NRGBA{R: 0xb4, G: 0x94, B: 0x5a, A: 0xff}
	wallColor     = color.NRGBA{R: 0x6b, G: 0x4f, B: 0x2e, A: 0xff}
	obstacleSide  = color.NRGBA{R: 0x8c, G: 0x6a, B: 0x40, A: 0xff}
	obstacleTop   = color.NRGBA{R: 0xa8, G: 0x84, B: 0x54, A: 0xff}
	shadowColor   = color.NRGBA{A: 0x50}
	shellColor    = colornames.Dimgray
	aimColor      = color.NRGBA{R: 0xff, G: 0xe0, B: 0x40, A: 0xd0}
	tutorialColor = colornames.White
)

const gridSpacing = 5.0

// Renderer draws arena, tanks, shells and effects in depth order.
type Renderer struct {
	camEntity ecs.Entity
	face      text.Face
	white     *ebiten.Image
}

func NewRenderer() *Renderer {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Renderer{
		face:  text.NewGoXFace(basicfont.Face7x13),
		white: white.SubImage(white.Bounds().Inset(1)).(*ebiten.Image),
	}
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	v, ok := r.View(w, screen)
	if !ok {
		return
	}

	screen.Fill(groundColor)
	r.drawArena(w, screen, v)

	type drawable struct {
		depth float64
		draw  func()
	}
	var items []drawable
	push := func(p mgl64.Vec3, fn func()) {
		items = append(items, drawable{depth: v.Depth(p), draw: fn})
	}

	for _, e := range w.Query(component.ObstacleTagComponent.Kind(), component.TransformComponent.Kind()) {
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}
		push(transform.Position, func() { r.drawObstacle(screen, v, transform, body) })
	}
	for _, e := range w.Query(component.TankComponent.Kind(), component.TransformComponent.Kind()) {
		tank, _ := ecs.Get(w, e, component.TankComponent)
		if !tank.Active {
			continue
		}
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		push(transform.Position, func() { r.drawTank(w, screen, v, e) })
	}
	for _, e := range w.Query(component.ShellComponent.Kind(), component.TransformComponent.Kind()) {
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		push(transform.Position, func() { r.drawShell(screen, v, transform) })
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].depth > items[j].depth })
	for _, it := range items {
		it.draw()
	}

	r.drawEffects(w, screen, v)
	r.drawTutorials(w, screen, v)
}

// View is the camera view for screen, found on the first camera entity.
func (r *Renderer) View(w *ecs.World, screen *ebiten.Image) (View, bool) {
	if !w.IsAlive(r.camEntity) {
		e, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return View{}, false
		}
		r.camEntity = e
	}
	b := screen.Bounds()
	return ViewFromCamera(w, r.camEntity, float64(b.Dx()), float64(b.Dy()))
}

func (r *Renderer) drawArena(w *ecs.World, screen *ebiten.Image, v View) {
	e, ok := w.First(component.ArenaComponent.Kind())
	if !ok {
		return
	}
	arena, _ := ecs.Get(w, e, component.ArenaComponent)

	for x := math.Ceil(arena.MinX/gridSpacing) * gridSpacing; x <= arena.MaxX; x += gridSpacing {
		r.line(screen, v, mgl64.Vec3{x, 0, arena.MinZ}, mgl64.Vec3{x, 0, arena.MaxZ}, 1, gridColor)
	}
	for z := math.Ceil(arena.MinZ/gridSpacing) * gridSpacing; z <= arena.MaxZ; z += gridSpacing {
		r.line(screen, v, mgl64.Vec3{arena.MinX, 0, z}, mgl64.Vec3{arena.MaxX, 0, z}, 1, gridColor)
	}

	corners := []mgl64.Vec3{
		{arena.MinX, 0, arena.MinZ}, {arena.MaxX, 0, arena.MinZ},
		{arena.MaxX, 0, arena.MaxZ}, {arena.MinX, 0, arena.MaxZ},
	}
	for i := range corners {
		r.line(screen, v, corners[i], corners[(i+1)%len(corners)], 4, wallColor)
	}
}

func (r *Renderer) drawObstacle(screen *ebiten.Image, v View, transform *component.Transform, body *component.PhysicsBody) {
	pos := transform.Position
	if body.Radius > 0 {
		r.cylinder(screen, v, pos, body.Radius, body.Height, obstacleSide, obstacleTop)
		return
	}
	bottom := footprint(pos, 0, body.Width, body.Length, 0)
	top := footprint(pos, 0, body.Width, body.Length, body.Height)
	r.box(screen, v, bottom, top, obstacleSide, obstacleTop)
}

func (r *Renderer) drawTank(w *ecs.World, screen *ebiten.Image, v View, e ecs.Entity) {
	tank, _ := ecs.Get(w, e, component.TankComponent)
	transform, _ := ecs.Get(w, e, component.TransformComponent)
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)

	width, length, height := 2.0, 3.0, 1.5
	if body != nil && body.Width > 0 {
		width, length, height = body.Width, body.Length, math.Max(body.Height, 0.5)
	}
	yaw := transform.Yaw()
	pos := transform.Position

	hull := common.FromColor(tank.Color)
	side := common.LerpRGBA(hull, common.RGBA{A: 1}, 0.35).NRGBA()

	r.polygon(screen, v, footprint(pos.Add(mgl64.Vec3{0.2, 0, -0.2}), yaw, width, length, 0), shadowColor)
	hullTop := height * 0.6
	r.box(screen, v, footprint(pos, yaw, width, length, 0), footprint(pos, yaw, width, length, hullTop), side, tank.Color)

	turret := pos.Add(mgl64.Vec3{0, hullTop, 0})
	r.cylinder(screen, v, turret, width*0.3, height-hullTop, side, tank.Color)

	if shooting, ok := ecs.Get(w, e, component.ShootingComponent); ok {
		muzzle := pos.Add(component.YawRotation(yaw).Rotate(shooting.MuzzleOffset))
		r.line(screen, v, pos.Add(mgl64.Vec3{0, height * 0.85, 0}), muzzle, 4, side)
		if shooting.AimVisible && shooting.State == component.WeaponCharging && shooting.MaxLaunchForce > shooting.MinLaunchForce {
			frac := (shooting.AimValue - shooting.MinLaunchForce) / (shooting.MaxLaunchForce - shooting.MinLaunchForce)
			tip := pos.Add(transform.Forward().Mul(length/2 + 1 + 4*math.Max(0, math.Min(1, frac))))
			r.line(screen, v, pos.Add(transform.Forward().Mul(length/2+0.5)), tip, 5, aimColor)
		}
	}

	if health, ok := ecs.Get(w, e, component.HealthComponent); ok && health.Indicator.Visible && health.Indicator.Max > 0 {
		ring := arcPoints(pos, math.Max(width, length)*0.75, health.Indicator.Value/health.Indicator.Max, 48)
		for i := 1; i < len(ring); i++ {
			r.line(screen, v, ring[i-1], ring[i], 3, health.Indicator.Fill)
		}
	}
}

func (r *Renderer) drawShell(screen *ebiten.Image, v View, transform *component.Transform) {
	ground := mgl64.Vec3{transform.Position.X(), 0, transform.Position.Z()}
	gx, gy := v.Project(ground)
	sx, sy := v.Project(transform.Position)
	ppu := float32(v.PixelsPerUnit())
	vector.FillCircle(screen, float32(gx), float32(gy), 0.3*ppu, shadowColor, true)
	vector.FillCircle(screen, float32(sx), float32(sy), 0.3*ppu, shellColor, true)
}

func (r *Renderer) drawEffects(w *ecs.World, screen *ebiten.Image, v View) {
	for _, e := range w.Query(component.EffectComponent.Kind(), component.TransformComponent.Kind()) {
		effect, _ := ecs.Get(w, e, component.EffectComponent)
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		progress := 1.0
		if ttl, ok := ecs.Get(w, e, component.TTLComponent); ok && effect.Duration > 0 {
			progress = 1 - math.Max(0, ttl.Remaining)/effect.Duration
		}
		radius := math.Max(0.5, effect.Radius) * (0.3 + 0.7*progress)
		fade := uint8(255 * (1 - progress))
		c := effect.Color
		c.A = fade

		x, y := v.Project(transform.Position)
		ppu := v.PixelsPerUnit()
		inner := c
		inner.A = fade / 2
		vector.FillCircle(screen, float32(x), float32(y), float32(radius*ppu*0.6), inner, true)
		vector.StrokeCircle(screen, float32(x), float32(y), float32(radius*ppu), 3, c, true)
	}
}

func (r *Renderer) drawTutorials(w *ecs.World, screen *ebiten.Image, v View) {
	for _, e := range w.Query(component.TutorialComponent.Kind(), component.TransformComponent.Kind()) {
		tutorial, _ := ecs.Get(w, e, component.TutorialComponent)
		if !tutorial.Visible || !isActiveTank(w, e) {
			continue
		}
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		x, y := v.Project(transform.Position.Add(mgl64.Vec3{0, 4, 0}))

		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignEnd
		op.LineSpacing = 15
		op.ColorScale.ScaleWithColor(tutorialColor)
		text.Draw(screen, tutorial.Text, r.face, op)
	}
}

func isActiveTank(w *ecs.World, e ecs.Entity) bool {
	tank, ok := ecs.Get(w, e, component.TankComponent)
	return ok && tank.Active
}

func (r *Renderer) line(screen *ebiten.Image, v View, a, b mgl64.Vec3, width float32, c color.Color) {
	ax, ay := v.Project(a)
	bx, by := v.Project(b)
	vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), width, c, true)
}

func (r *Renderer) polygon(screen *ebiten.Image, v View, pts [4]mgl64.Vec3, c color.Color) {
	cr, cg, cb, ca := c.RGBA()
	verts := make([]ebiten.Vertex, 0, len(pts))
	for _, p := range pts {
		x, y := v.Project(p)
		verts = append(verts, ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: float32(cr) / 0xffff, ColorG: float32(cg) / 0xffff,
			ColorB: float32(cb) / 0xffff, ColorA: float32(ca) / 0xffff,
		})
	}
	screen.DrawTriangles(verts, []uint16{0, 1, 2, 0, 2, 3}, r.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// box fills the visible sides of a prism and then its top.
func (r *Renderer) box(screen *ebiten.Image, v View, bottom, top [4]mgl64.Vec3, side, cap color.Color) {
	for i := range bottom {
		j := (i + 1) % len(bottom)
		r.polygon(screen, v, [4]mgl64.Vec3{bottom[i], bottom[j], top[j], top[i]}, side)
	}
	r.polygon(screen, v, top, cap)
}

func (r *Renderer) cylinder(screen *ebiten.Image, v View, base mgl64.Vec3, radius, height float64, side, cap color.Color) {
	bx, by := v.Project(base)
	tx, ty := v.Project(base.Add(mgl64.Vec3{0, height, 0}))
	rad := float32(radius * v.PixelsPerUnit())
	vector.FillCircle(screen, float32(bx), float32(by), rad, side, true)
	vector.StrokeLine(screen, float32(bx), float32(by), float32(tx), float32(ty), 2*rad, side, false)
	vector.FillCircle(screen, float32(tx), float32(ty), rad, cap, true)
}
