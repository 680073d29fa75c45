package tui

import (
	"fmt"
	"math"

	"github.com/beka-birhanu/decision-maze/game"
	"github.com/beka-birhanu/decision-maze/geometry"
	"github.com/beka-birhanu/decision-maze/maze"
	"github.com/gdamore/tcell/v2"
)

// Glyphs used by the view.
const (
	wallRune     = '█'
	waypointRune = '·'
	agentRune    = '@'
	exitRune     = '▲'
)

var (
	wallStyle     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	waypointStyle = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	agentStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	exitStyle     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	textStyle     = tcell.StyleDefault
	resultStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Reverse(true)
)

// View draws a maze and the agent on a terminal screen. Cell (x, y) is drawn
// at column 2x+1, row 2y+1 of the maze area; the odd rows and columns between
// cells hold the walls.
type View struct {
	screen tcell.Screen
	top    int // First row of the maze area; the rows above hold the exit labels.
}

func NewView(screen tcell.Screen) *View {
	return &View{screen: screen, top: 2}
}

// Draw renders one frame and shows it.
func (v *View) Draw(m maze.Snapshot, s game.State) {
	v.screen.Clear()
	v.drawLabels(m)
	v.drawGrid(m)
	v.drawWaypoints(m, s.Agent.Waypoints)
	if s.Agent.Target != nil {
		v.put(m, *s.Agent.Target, waypointRune, waypointStyle)
	}
	v.put(m, s.Agent.Position, agentRune, agentStyle)
	v.drawStatus(m, s)
	v.screen.Show()
}

// Project maps a world position to screen coordinates, clamped to the maze
// area.
func (v *View) Project(m maze.Snapshot, p geometry.Vec) (int, int) {
	fx := (p.X + float64(m.Width)*m.CellSize/2) / m.CellSize
	fy := (p.Z + float64(m.Height)*m.CellSize/2) / m.CellSize
	col := clamp(int(math.Floor(fx*2)), 0, 2*m.Width)
	row := clamp(int(math.Floor(fy*2)), 0, 2*m.Height)
	return col, row + v.top
}

func (v *View) drawLabels(m maze.Snapshot) {
	for _, e := range m.Exits {
		col := 2*e.Cell.X + 1
		v.screen.SetContent(col, v.top-1, exitRune, nil, exitStyle)
		if e.Label == "" {
			continue
		}
		start := col - len([]rune(e.Label))/2
		v.text(max(start, 0), v.top-2, e.Label, exitStyle)
	}
}

func (v *View) drawGrid(m maze.Snapshot) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := m.Cells[y][x]
			col, row := 2*x+1, 2*y+1+v.top

			// Corners are always drawn; edges only when closed.
			v.screen.SetContent(col-1, row-1, wallRune, nil, wallStyle)
			v.screen.SetContent(col+1, row-1, wallRune, nil, wallStyle)
			v.screen.SetContent(col-1, row+1, wallRune, nil, wallStyle)
			v.screen.SetContent(col+1, row+1, wallRune, nil, wallStyle)

			if c.HasWall(maze.Up) {
				v.screen.SetContent(col, row-1, wallRune, nil, wallStyle)
			}
			if c.HasWall(maze.Down) {
				v.screen.SetContent(col, row+1, wallRune, nil, wallStyle)
			}
			if c.HasWall(maze.Left) {
				v.screen.SetContent(col-1, row, wallRune, nil, wallStyle)
			}
			if c.HasWall(maze.Right) {
				v.screen.SetContent(col+1, row, wallRune, nil, wallStyle)
			}
		}
	}
}

func (v *View) drawWaypoints(m maze.Snapshot, waypoints []geometry.Vec) {
	for _, w := range waypoints {
		v.put(m, w, waypointRune, waypointStyle)
	}
}

func (v *View) drawStatus(m maze.Snapshot, s game.State) {
	row := v.top + 2*m.Height + 2
	v.text(0, row, fmt.Sprintf("%s vs %s  state: %s  t=%.1fs  recoveries: %d",
		s.Options[0], s.Options[1], s.Agent.State, s.Elapsed, s.Agent.Recoveries), textStyle)
	if s.Result != nil {
		v.text(0, row+1, fmt.Sprintf(" Decision: %s ", s.Result.Label), resultStyle)
	}
	v.text(0, row+2, "r: new maze  q: quit", textStyle)
}

func (v *View) put(m maze.Snapshot, p geometry.Vec, r rune, style tcell.Style) {
	col, row := v.Project(m, p)
	v.screen.SetContent(col, row, r, nil, style)
}

func (v *View) text(col, row int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(col, row, r, nil, style)
		col++
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
