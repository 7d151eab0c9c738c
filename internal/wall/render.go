package wall

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/boothlab/photowall/internal/media"
	"github.com/boothlab/photowall/internal/wall/physics"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	bold    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
)

const (
	stylePlain = iota
	styleBorder
	styleLabel
	styleHeld
	stylePlaceholder
)

var cellStyles = []lipgloss.Style{white, dim, white, magenta, dimmer}

type cell struct {
	r rune
	s uint8
}

// View is a pure projection of the world: it reads positions and drag states
// and never mutates them.
func (m *model) View() string {
	if !m.ready {
		return "starting the wall..."
	}
	if m.selected != nil {
		return m.lightboxView()
	}

	wallH := m.height - 1
	canvas := make([][]cell, wallH)
	for y := range canvas {
		canvas[y] = make([]cell, m.width)
		for x := range canvas[y] {
			canvas[y][x] = cell{r: ' '}
		}
	}

	for _, obj := range m.world.Objects() {
		drawTile(canvas, obj)
	}
	if m.showStats {
		m.drawStats(canvas)
	}

	var b strings.Builder
	for _, row := range canvas {
		b.WriteString(renderRow(row))
		b.WriteString("\n")
	}
	b.WriteString(m.statusBar())
	return b.String()
}

func drawTile(canvas [][]cell, obj *physics.Object) {
	x0, y0 := int(obj.Pos.X), int(obj.Pos.Y)
	w, h := int(obj.W), int(obj.H)
	if w < 2 || h < 2 {
		return
	}

	borderStyle := uint8(styleBorder)
	horiz, vert := '─', '│'
	tl, tr, bl, br := '╭', '╮', '╰', '╯'
	if obj.Drag == physics.Held {
		borderStyle = styleHeld
		horiz, vert = '═', '║'
		tl, tr, bl, br = '╔', '╗', '╚', '╝'
	}

	fill := ' '
	fillStyle := uint8(stylePlain)
	if !obj.Record.HasDisplayURL() {
		fill = '░'
		fillStyle = stylePlaceholder
	}

	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			var c cell
			switch {
			case (dy == 0 || dy == h-1) && (dx == 0 || dx == w-1):
				c = cell{r: corner(dx == 0, dy == 0, tl, tr, bl, br), s: borderStyle}
			case dy == 0 || dy == h-1:
				c = cell{r: horiz, s: borderStyle}
			case dx == 0 || dx == w-1:
				c = cell{r: vert, s: borderStyle}
			default:
				c = cell{r: fill, s: fillStyle}
			}
			put(canvas, x0+dx, y0+dy, c)
		}
	}

	label := truncate(obj.Record.ConceptName, w-2)
	labelStyle := uint8(styleLabel)
	if obj.Drag == physics.Held {
		labelStyle = styleHeld
	}
	lx := x0 + 1 + (w-2-len([]rune(label)))/2
	ly := y0 + h/2
	for i, r := range label {
		put(canvas, lx+i, ly, cell{r: r, s: labelStyle})
	}
}

func corner(left, top bool, tl, tr, bl, br rune) rune {
	switch {
	case left && top:
		return tl
	case !left && top:
		return tr
	case left && !top:
		return bl
	default:
		return br
	}
}

func put(canvas [][]cell, x, y int, c cell) {
	if y < 0 || y >= len(canvas) || x < 0 || x >= len(canvas[y]) {
		return
	}
	canvas[y][x] = c
}

func renderRow(row []cell) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(row); i++ {
		if i == len(row) || row[i].s != row[start].s {
			runes := make([]rune, 0, i-start)
			for _, c := range row[start:i] {
				runes = append(runes, c.r)
			}
			b.WriteString(cellStyles[row[start].s].Render(string(runes)))
			start = i
		}
	}
	return b.String()
}

func (m *model) drawStats(canvas [][]cell) {
	if len(m.countHist) == 0 {
		return
	}
	graph := asciigraph.Plot(m.countHist,
		asciigraph.Height(4),
		asciigraph.Width(30),
		asciigraph.Caption(fmt.Sprintf("tiles %d · frame %.1fms", m.world.Len(), m.frameMs)),
	)
	lines := strings.Split(graph, "\n")
	x0 := m.width - 42
	if x0 < 0 {
		x0 = 0
	}
	for dy, line := range lines {
		for dx, r := range []rune(line) {
			put(canvas, x0+dx, 1+dy, cell{r: r, s: styleLabel})
		}
	}
}

func (m *model) statusBar() string {
	event := m.cfg.Event
	if event == "" {
		event = "all events"
	}
	left := fmt.Sprintf(" photowall · %s · %d tiles", event, m.world.Len())
	right := "drag to throw · click to inspect · s stats · q quit "
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return dim.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *model) lightboxView() string {
	rec := m.selected

	lines := []string{
		bold.Render(orUntitled(rec.ConceptName)),
		"",
		dim.Render("created ") + white.Render(rec.CreatedAt.Format("Jan 2 2006 15:04")),
	}
	if rec.HasDisplayURL() {
		lines = append(lines, dim.Render("view    ")+cyan.Render(rec.ImageURL))
	} else {
		lines = append(lines, dimmer.Render("no preview available"))
	}
	if rec.DownloadURL != "" {
		lines = append(lines, dim.Render("share   ")+cyan.Render(rec.DownloadURL))
	}
	if rec.Kind == media.KindVideo {
		lines = append(lines, "", magenta.Render("video · plays with controls on the booth screen"))
	}
	lines = append(lines, "", dimmer.Render("esc or click to close"))

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("86")).
		Padding(1, 3).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

func orUntitled(name string) string {
	if name == "" {
		return "untitled"
	}
	return name
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return string(r[:1])
	}
	return string(r[:max-1]) + "…"
}
