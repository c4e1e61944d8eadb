package main

import (
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/ha1tch/orbview/pkg/session"
)

var (
	styleDefault    = tcell.StyleDefault
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	stylePaused     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorNavy).Bold(true)
	styleMessage    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleBorder     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePanel      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	stylePanelTitle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePanelDim   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// messageTTL is how long a status message stays visible.
const messageTTL = 3 * time.Second

const panelWidth = 32

func (v *Viewer) draw() {
	v.blitFrame()
	v.drawStatus()

	if v.showHelp {
		v.drawHelp()
		return
	}
	if e := v.scene.HoveredEntity(); e != nil && e.ID != v.selectedID {
		v.drawHoverPanel(e)
	} else if v.detail != nil {
		v.drawDetailPanel(v.detail)
	}
}

// blitFrame resamples the renderer's device-pixel frame down to the
// cell grid and paints it with half blocks: each cell shows two logical
// pixel rows, the top as foreground of '▀' and the bottom as background.
func (v *Viewer) blitFrame() {
	if v.frame == nil {
		return
	}
	cols, rows := v.screen.Size()
	if cols < 1 || rows < 2 {
		return
	}
	cw, ch := cols, 2*(rows-1)

	if v.scaled == nil || v.scaled.Bounds().Dx() != cw || v.scaled.Bounds().Dy() != ch {
		v.scaled = image.NewRGBA(image.Rect(0, 0, cw, ch))
	}
	draw.CatmullRom.Scale(v.scaled, v.scaled.Bounds(), v.frame, v.frame.Bounds(), draw.Src, nil)

	for y := 0; y < rows-1; y++ {
		for x := 0; x < cols; x++ {
			top := v.scaled.RGBAAt(x, 2*y)
			bot := v.scaled.RGBAAt(x, 2*y+1)
			st := styleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			v.screen.SetContent(x, y, '▀', nil, st)
		}
	}
}

func (v *Viewer) drawStatus() {
	cols, rows := v.screen.Size()
	if rows < 1 {
		return
	}
	y := rows - 1
	for x := 0; x < cols; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	count := len(v.scene.Engine().Nodes()) - 1
	if count < 0 {
		count = 0
	}
	left := fmt.Sprintf(" orbview  %d sessions", count)
	if v.message != "" && time.Since(v.messageAt) < messageTTL {
		left = " " + v.message
		drawText(v.screen, 0, y, styleMessage, left)
	} else {
		drawText(v.screen, 0, y, styleStatus, left)
	}
	if v.paused {
		drawText(v.screen, len(left)+2, y, stylePaused, "PAUSED")
	}

	hints := "q quit  p pause  r reload  w snapshot  ? help "
	if x := cols - len(hints); x > len(left)+10 {
		drawText(v.screen, x, y, styleStatus, hints)
	}
}

func (v *Viewer) drawHoverPanel(e *session.Entity) {
	lines := []panelLine{
		{e.DisplayName, stylePanelTitle},
		{fmt.Sprintf("nodes %d  edges %d", e.NodeCount, e.EdgeCount), stylePanel},
		{fmt.Sprintf("words %d", e.Stats.TotalWords), stylePanel},
		{"updated " + age(e.UpdatedAt), stylePanelDim},
	}
	v.drawPanel("session", lines)
}

func (v *Viewer) drawDetailPanel(e *session.Entity) {
	s := e.Stats
	lines := []panelLine{
		{e.DisplayName, stylePanelTitle},
		{shortID(e.ID), stylePanelDim},
		{fmt.Sprintf("nodes %d  edges %d", e.NodeCount, e.EdgeCount), stylePanel},
		{fmt.Sprintf("docs %d  text %d", s.Documents, s.TextNodes), stylePanel},
		{fmt.Sprintf("img %d  web %d", s.Images, s.Websites), stylePanel},
		{fmt.Sprintf("words %d", s.TotalWords), stylePanel},
		{"created " + age(e.CreatedAt), stylePanelDim},
		{"updated " + age(e.UpdatedAt), stylePanelDim},
	}
	v.drawPanel("selected", lines)
}

type panelLine struct {
	text  string
	style tcell.Style
}

// drawPanel draws a bordered box in the top-right corner with one line
// of content per entry, truncated to the panel width.
func (v *Viewer) drawPanel(title string, lines []panelLine) {
	cols, rows := v.screen.Size()
	w := panelWidth
	h := len(lines) + 2
	x := cols - w - 1
	y := 1
	if x < 0 || y+h > rows-1 {
		return
	}
	drawBox(v.screen, x, y, w, h, title)
	for i, ln := range lines {
		drawText(v.screen, x+2, y+1+i, ln.style, truncate(ln.text, w-4))
	}
}

func (v *Viewer) drawHelp() {
	cols, rows := v.screen.Size()
	help := []string{
		"q       quit",
		"p       pause physics",
		"r       reload sessions",
		"w       write PNG snapshot",
		"esc     clear selection",
		"?       toggle this help",
		"",
		"click a disc to select it",
		"drag a disc to move it",
	}
	w, h := 34, len(help)+2
	x, y := (cols-w)/2, (rows-h)/2
	if x < 0 || y < 0 {
		return
	}
	drawBox(v.screen, x, y, w, h, "orbview")
	for i, line := range help {
		drawText(v.screen, x+2, y+1+i, stylePanel, line)
	}
}

func drawBox(s tcell.Screen, x, y, w, h int, title string) {
	s.SetContent(x, y, '┌', nil, styleBorder)
	for i := 1; i < w-1; i++ {
		s.SetContent(x+i, y, '─', nil, styleBorder)
	}
	s.SetContent(x+w-1, y, '┐', nil, styleBorder)

	if title != "" && len(title)+4 < w {
		drawText(s, x+2, y, styleBorder, " "+title+" ")
	}

	for row := 1; row < h-1; row++ {
		s.SetContent(x, y+row, '│', nil, styleBorder)
		for i := 1; i < w-1; i++ {
			s.SetContent(x+i, y+row, ' ', nil, styleDefault)
		}
		s.SetContent(x+w-1, y+row, '│', nil, styleBorder)
	}

	s.SetContent(x, y+h-1, '└', nil, styleBorder)
	for i := 1; i < w-1; i++ {
		s.SetContent(x+i, y+h-1, '─', nil, styleBorder)
	}
	s.SetContent(x+w-1, y+h-1, '┘', nil, styleBorder)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max < 1 {
		return ""
	}
	return string(r[:max-1]) + "…"
}

func shortID(id string) string {
	for i, r := range id {
		if r == '-' {
			return id[:i]
		}
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// age renders a unix-millisecond timestamp as a rough relative time.
func age(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	d := time.Since(time.UnixMilli(ms))
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
