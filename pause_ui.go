package main

import (
	"context"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/fighter/ecs/component"
)

var (
	menuText  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	menuDim   = color.NRGBA{R: 0xb0, G: 0xb4, B: 0xc0, A: 0xff}
	menuPanel = color.NRGBA{A: 200}
	menuIdle  = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	menuHover = color.NRGBA{R: 0x4a, G: 0x4f, B: 0x5c, A: 0xff}
)

// pauseMenu is the Esc overlay. Its status line is refreshed every time the
// menu opens.
type pauseMenu struct {
	ui     *ebitenui.UI
	status *widget.Text
}

func newPauseMenu(g *Game) *pauseMenu {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	centred := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	m := &pauseMenu{}
	m.status = widget.NewText(
		widget.TextOpts.Text("", &face, menuDim),
		widget.TextOpts.WidgetOpts(centred),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{
				Idle:    imageui.NewNineSliceColor(menuIdle),
				Hover:   imageui.NewNineSliceColor(menuHover),
				Pressed: imageui.NewNineSliceColor(menuHover),
			}),
			widget.ButtonOpts.Text(label, &face, &widget.ButtonTextColor{Idle: menuText}),
			widget.ButtonOpts.WidgetOpts(centred),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(menuPanel)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/2, baseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(widget.NewText(widget.TextOpts.Text("Paused", &face, menuText), widget.TextOpts.WidgetOpts(centred)))
	panel.AddChild(m.status)
	panel.AddChild(button("Resume", func() { g.setPaused(false) }))
	panel.AddChild(button("Reset round", func() {
		g.resetRound()
		g.setPaused(false)
	}))
	panel.AddChild(button("Reload match", func() {
		if err := g.load(context.Background()); err != nil {
			g.logger.Warn("reload failed, keeping current match", zap.Error(err))
			m.status.Label = "reload failed, see log"
			return
		}
		g.setPaused(false)
	}))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	m.ui = &ebitenui.UI{Container: root}
	return m
}

func (m *pauseMenu) refresh(g *Game) {
	m.status.Label = fmt.Sprintf("%s  round %d  %d - %d",
		g.match.Spec.Name,
		g.rounds.Round(),
		g.rounds.Score(component.TeamOne),
		g.rounds.Score(component.TeamTwo),
	)
}

func (m *pauseMenu) Update() { m.ui.Update() }

func (m *pauseMenu) Draw(screen *ebiten.Image) { m.ui.Draw(screen) }
