package main

import (
	"image/color"
	"os"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
	"gopkg.in/yaml.v3"
)

// runSummary is the state copied to the clipboard from the pause menu.
type runSummary struct {
	RunID    string   `yaml:"run_id"`
	Frame    uint64   `yaml:"frame"`
	Score    float64  `yaml:"score"`
	Combo    int      `yaml:"combo"`
	Wave     int      `yaml:"wave"`
	Lives    int      `yaml:"lives"`
	Health   float64  `yaml:"health"`
	Weapon   int      `yaml:"weapon_level"`
	Boss     string   `yaml:"boss,omitempty"`
	Phase    int      `yaml:"boss_phase,omitempty"`
	Enemies  int      `yaml:"enemies"`
	Hazards  int      `yaml:"hazards"`
	Events   []string `yaml:"environment,omitempty"`
	GameOver bool     `yaml:"game_over"`
}

func (g *Game) summary() runSummary {
	s := g.snap
	out := runSummary{
		RunID:    s.RunID,
		Frame:    s.Frame,
		Score:    s.Score,
		Combo:    s.Combo,
		Wave:     s.Wave.Wave,
		Lives:    s.Player.Lives,
		Health:   s.Player.Current,
		Weapon:   s.Player.WeaponLevel,
		Enemies:  len(s.Enemies),
		Hazards:  len(s.Hazards),
		Events:   s.Environment,
		GameOver: s.GameOver,
	}
	if s.Boss != nil {
		out.Boss = s.Boss.Type
		out.Phase = s.Boss.Phase
	}
	return out
}

func (g *Game) copySummary() {
	if g.snap == nil {
		return
	}
	data, err := yaml.Marshal(g.summary())
	if err != nil {
		g.log.Printf("viewer: summary: %v", err)
		return
	}
	if err := clipboard.Init(); err != nil {
		g.log.Printf("viewer: clipboard: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus("run summary copied")
}

// NewPauseUI builds a centered pause menu drawn with colored nine-slices and
// the built-in basic font.
func NewPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(center),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(g.width/3, g.height/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(button("Resume", func() { g.paused = false }))
	panel.AddChild(button("Copy run summary", g.copySummary))
	panel.AddChild(button("Quit", func() { os.Exit(0) }))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
