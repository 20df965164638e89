package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/milk9111/shmup/ecs/system"
	"github.com/milk9111/shmup/prefabs"
	"golang.org/x/image/colornames"
)

type Game struct {
	kernel *system.Kernel
	snap   *ecs.Snapshot
	log    *log.Logger

	width  int
	height int

	debug   bool
	paused  bool
	pauseUI *ebitenui.UI
	status  string

	watcher *prefabs.Watcher

	canvas *ebiten.Image
	shake  shake
}

// shake offsets the whole playfield for a short time after big impacts.
type shake struct {
	remaining float64
	magnitude float64
	frame     int
}

func (s *shake) trigger(ms, magnitude float64) {
	if magnitude >= s.magnitude || s.remaining <= 0 {
		s.magnitude = magnitude
	}
	s.remaining = math.Max(s.remaining, ms)
}

func (s *shake) offset(dt float64) (float64, float64) {
	if s.remaining <= 0 {
		return 0, 0
	}
	s.remaining -= dt
	s.frame++
	k := s.magnitude
	return k * math.Sin(float64(s.frame)*1.7), k * math.Cos(float64(s.frame)*2.3)
}

func (g *Game) handleEvent(evt ecs.Event) {
	switch evt.Type {
	case ecs.EventExplosion, ecs.EventPlayerDied:
		g.shake.trigger(250, 6)
	case ecs.EventBossPhaseChanged, ecs.EventBossDefeated:
		g.shake.trigger(500, 10)
	case ecs.EventPlayerDamaged:
		g.shake.trigger(120, 3)
	}
}

func NewGame(k *system.Kernel, watcher *prefabs.Watcher, logger *log.Logger, debug bool) *Game {
	cfg := k.World.Config()
	g := &Game{
		kernel:  k,
		snap:    k.Snapshot(),
		log:     logger,
		width:   int(cfg.WorldWidth),
		height:  int(cfg.WorldHeight),
		debug:   debug,
		watcher: watcher,
	}
	g.pauseUI = NewPauseUI(g)
	k.World.Subscribe(ecs.SubscriberFunc(g.handleEvent))
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.debug = !g.debug
	}

	g.pollReload()

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.equipFromKeys()
	g.kernel.Update(1000/float64(ebiten.TPS()), readInput())
	g.snap = g.kernel.Snapshot()
	return nil
}

func readInput() ecs.Input {
	var move cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move.Y++
	}
	if move.X != 0 || move.Y != 0 {
		move = move.Normalize()
	}

	return ecs.Input{
		Move:    move,
		Shoot:   ebiten.IsKeyPressed(ebiten.KeySpace),
		Shield:  inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyQ),
		Ability: inpututil.IsKeyJustPressed(ebiten.KeyE),

		Secondary:  ebiten.IsKeyPressed(ebiten.KeyX),
		Special:    ebiten.IsKeyPressed(ebiten.KeyC),
		BulletTime: inpututil.IsKeyJustPressed(ebiten.KeyT),
	}
}

var digitKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8,
}

// equipFromKeys maps the digit row to the weapon list: a digit equips the
// primary slot, with Alt the secondary and with Ctrl the special.
func (g *Game) equipFromKeys() {
	slot := component.SlotPrimary
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyAlt):
		slot = component.SlotSecondary
	case ebiten.IsKeyPressed(ebiten.KeyControl):
		slot = component.SlotSpecial
	}
	for i, kind := range component.WeaponKinds {
		if i < len(digitKeys) && inpututil.IsKeyJustPressed(digitKeys[i]) {
			if g.kernel.EquipWeapon(kind, slot) {
				g.setStatus(fmt.Sprintf("%s -> %s", kind, slot))
			}
		}
	}
}

// pollReload drains pending file changes without blocking the frame.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Printf("viewer: watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	if prefabs.IsScript(name) {
		src, err := prefabs.LoadScript(prefabs.AbilityWeightsScript)
		if err != nil {
			g.log.Printf("viewer: reload %s: %v", name, err)
			return
		}
		sw, err := system.NewScriptWeigher(src, nil, g.log)
		if err != nil {
			g.log.Printf("viewer: reload %s: %v", name, err)
			return
		}
		g.kernel.SetWeigher(sw)
		g.setStatus("reloaded " + name)
		return
	}

	c, err := prefabs.LoadCatalog()
	if err != nil {
		g.log.Printf("viewer: reload %s: %v", name, err)
		return
	}
	if err := g.kernel.SetCatalog(c); err != nil {
		g.log.Printf("viewer: reload %s: %v", name, err)
		return
	}
	g.setStatus("reloaded " + name)
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.log.Printf("viewer: %s", s)
}

var (
	colorBackground   = color.NRGBA{R: 0x08, G: 0x08, B: 0x14, A: 0xff}
	colorPlayerBullet = colornames.Lightyellow
	colorEnemyBullet  = colornames.Orangered
)

func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		g.canvas = ebiten.NewImage(g.width, g.height)
	}
	g.drawWorld(g.canvas)

	var op ebiten.DrawImageOptions
	if !g.paused {
		dx, dy := g.shake.offset(1000 / float64(ebiten.TPS()))
		op.GeoM.Translate(dx, dy)
	}
	screen.Fill(colorBackground)
	screen.DrawImage(g.canvas, &op)

	if g.snap != nil {
		g.drawHUD(screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	s := g.snap
	if s == nil {
		return
	}

	for _, h := range s.Hazards {
		drawEntity(screen, h, hazardColor(h.Kind))
	}
	for _, p := range s.Powerups {
		drawEntity(screen, p, colornames.Limegreen)
	}
	for _, e := range s.Enemies {
		drawEntity(screen, e, colornames.Crimson)
	}
	if b := s.Boss; b != nil {
		drawBoss(screen, b)
	}
	for _, p := range s.Projectiles {
		c := colorEnemyBullet
		if p.Layer&uint32(g.kernel.World.Config().Layers.PlayerBullet) != 0 {
			c = colorPlayerBullet
		}
		drawEntity(screen, p, c)
	}
	if s.Player.Alive {
		drawPlayer(screen, s.Player)
	}
}

func drawEntity(screen *ebiten.Image, e ecs.EntityView, c color.Color) {
	if e.Alpha <= 0 {
		return
	}
	if e.Flash {
		c = colornames.White
	}
	c = fade(c, e.Alpha)
	if e.Width > 0 && e.Height > 0 {
		vector.DrawFilledRect(screen, float32(e.X-e.Width/2), float32(e.Y-e.Height/2), float32(e.Width), float32(e.Height), c, false)
		return
	}
	vector.DrawFilledCircle(screen, float32(e.X), float32(e.Y), float32(e.Radius), c, true)
}

func drawPlayer(screen *ebiten.Image, p ecs.PlayerView) {
	c := color.Color(colornames.Deepskyblue)
	if p.Invulnerable {
		c = fade(c, 0.5)
	}
	drawEntity(screen, p.EntityView, c)
	if p.ShieldUp {
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius+8), 2, colornames.Cyan, true)
	}
}

func drawBoss(screen *ebiten.Image, b *ecs.BossView) {
	drawEntity(screen, b.EntityView, colornames.Darkviolet)
	if b.Shield > 0 {
		vector.StrokeCircle(screen, float32(b.X), float32(b.Y), float32(b.Radius+10), 3, colornames.Cyan, true)
	}
	for _, wp := range b.WeakPoints {
		if !wp.Active {
			continue
		}
		c := colornames.Gray
		if wp.Vulnerable {
			c = colornames.Gold
		}
		vector.DrawFilledCircle(screen, float32(wp.X), float32(wp.Y), float32(wp.Size), c, true)
	}
	if b.Darkness > 0 {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), fade(color.Black, b.Darkness), false)
	}
}

func hazardColor(kind string) color.Color {
	switch kind {
	case "blackhole":
		return colornames.Indigo
	case "wormhole":
		return colornames.Mediumpurple
	case "energyfield":
		return colornames.Aqua
	case "solarflare":
		return colornames.Orange
	}
	return colornames.Sienna
}

func fade(c color.Color, alpha float64) color.Color {
	r, g, b, a := c.RGBA()
	k := math.Max(0, math.Min(1, alpha))
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(float64(a>>8) * k)}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.snap
	p := s.Player
	hud := fmt.Sprintf("Score %.0f  Combo %d  Lives %d  HP %.0f/%.0f  Shield %.0f  Weapon %d  Wave %d (%d left)",
		s.Score, s.Combo, p.Lives, p.Current, p.Max, p.ShieldEnergy, p.WeaponLevel, s.Wave.Wave, s.Wave.Remaining)
	ebitenutil.DebugPrintAt(screen, hud, 10, 10)

	if b := s.Boss; b != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s phase %d/%d %s  HP %.0f", b.Type, b.Phase, b.Phases, b.State, b.Health), 10, 26)
	}
	if len(s.Environment) > 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Events: %v", s.Environment), 10, 42)
	}
	ebitenutil.DebugPrintAt(screen, arsenalLine(p.Arsenal, s.Time), 10, 74)
	if s.GameOver {
		ebitenutil.DebugPrintAt(screen, "GAME OVER", g.width/2-30, g.height/2)
	}
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 10, g.height-20)
	}
	if g.debug {
		stats := g.kernel.Projectiles.Stats(g.kernel.World)
		dbg := fmt.Sprintf("TPS %.0f  FPS %.0f  frame %d  enemies %d  projectiles %d/%d  hazards %d",
			ebiten.ActualTPS(), ebiten.ActualFPS(), s.Frame, len(s.Enemies), stats.Active, stats.Capacity, len(s.Hazards))
		ebitenutil.DebugPrintAt(screen, dbg, 10, 58)
	}
}

func arsenalLine(a ecs.ArsenalView, t ecs.TimeView) string {
	slots := make([]string, len(a.Slots))
	for i, kind := range a.Slots {
		slots[i] = kind
		if kind == "" {
			slots[i] = "-"
		}
	}
	line := fmt.Sprintf("Arsenal %s  Heat %.0f", strings.Join(slots, "/"), a.Heat)
	if a.Overheated {
		line += " OVERHEAT"
	}
	if a.Charge > 0 {
		line += fmt.Sprintf("  Charge %.0f%%", a.Charge*100)
	}
	line += fmt.Sprintf("  Time x%.2f  Energy %.0f", t.Scale, t.Energy)
	if len(t.Active) > 0 {
		line += " " + strings.Join(t.Active, ",")
	}
	return line
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
