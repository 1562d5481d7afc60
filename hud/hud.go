// Package hud draws the match banner and the start and end screens.
package hud

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	panelColor  = color.NRGBA{A: 200}
	buttonIdle  = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	buttonHover = color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 0xff}
	buttonPress = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
)

// HUD owns the ebitenui tree. Start and restart run the callbacks given to
// New.
type HUD struct {
	ui *ebitenui.UI

	message *widget.Text
	start   *widget.Container
	end     *widget.Container

	screen Screen
	shown  bool
	paused bool
}

type Options struct {
	Title     string
	OnStart   func()
	OnRestart func()
}

func New(opts Options) (*HUD, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("hud: load font: %w", err)
	}
	var bannerFace text.Face = &text.GoTextFace{Source: src, Size: 40}
	var titleFace text.Face = &text.GoTextFace{Source: src, Size: 56}
	var smallFace text.Face = text.NewGoXFace(basicfont.Face7x13)

	h := &HUD{}

	h.message = widget.NewText(
		widget.TextOpts.Text("", &bannerFace, colornames.White),
		widget.TextOpts.ProcessBBCode(true),
		widget.TextOpts.Position(widget.TextPositionCenter, widget.TextPositionCenter),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
		})),
	)

	title := opts.Title
	if title == "" {
		title = "TANKS!"
	}
	h.start = newPanel(&titleFace, &bannerFace, &smallFace, title, "START", "local multiplayer", opts.OnStart)
	h.end = newPanel(&titleFace, &bannerFace, &smallFace, "GAME OVER", "RESTART", "", opts.OnRestart)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(h.message)
	root.AddChild(h.start)
	root.AddChild(h.end)
	h.ui = &ebitenui.UI{Container: root}

	h.show(ScreenStart)
	return h, nil
}

func newPanel(titleFace, buttonFace, smallFace *text.Face, heading, action, caption string, onClick func()) *widget.Container {
	centre := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(16),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 30, Bottom: 30, Left: 40, Right: 40}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(heading, titleFace, colornames.White),
		widget.TextOpts.WidgetOpts(centre),
	))
	if caption != "" {
		panel.AddChild(widget.NewText(
			widget.TextOpts.Text(caption, smallFace, colornames.Lightgray),
			widget.TextOpts.WidgetOpts(centre),
		))
	}
	panel.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    image.NewNineSliceColor(buttonIdle),
			Hover:   image.NewNineSliceColor(buttonHover),
			Pressed: image.NewNineSliceColor(buttonPress),
		}),
		widget.ButtonOpts.Text(action, buttonFace, &widget.ButtonTextColor{Idle: colornames.White}),
		widget.ButtonOpts.WidgetOpts(centre, widget.WidgetOpts.MinSize(220, 56)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	))
	return panel
}

// Sync shows the overlay for match and copies its banner.
func (h *HUD) Sync(match *component.Match) {
	if h == nil {
		return
	}
	h.show(ScreenFor(match))
	h.message.Label = MessageFor(match)
	if h.paused && h.screen == ScreenNone {
		h.message.Label = "PAUSED"
	}
}

// SetPaused swaps the banner for a pause notice until unpaused.
func (h *HUD) SetPaused(paused bool) {
	if h != nil {
		h.paused = paused
	}
}

func (h *HUD) Screen() Screen {
	return h.screen
}

func (h *HUD) show(s Screen) {
	if h.shown && h.screen == s {
		return
	}
	log.Debug("hud screen", "from", h.screen, "to", s)
	h.screen = s
	h.shown = true
	h.start.GetWidget().Visibility = visibility(s == ScreenStart)
	h.end.GetWidget().Visibility = visibility(s == ScreenEnd)
}

func visibility(show bool) widget.Visibility {
	if show {
		return widget.Visibility_Show
	}
	return widget.Visibility_Hide
}

func (h *HUD) Update() {
	if h != nil {
		h.ui.Update()
	}
}

func (h *HUD) Draw(screen *ebiten.Image) {
	if h != nil {
		h.ui.Draw(screen)
	}
}
