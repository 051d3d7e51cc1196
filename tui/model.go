package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/shilo-maker/solupresenter-sub006/midisync"
	"github.com/shilo-maker/solupresenter-sub006/theme"
	"github.com/shilo-maker/solupresenter-sub006/widgets"
)

// EventRow is one rendered line of the event list.
type EventRow struct {
	Tick uint32
	Desc string
}

// FileInfo is everything the inspect view shows about one sync file.
type FileInfo struct {
	Path        string
	BPM         float64
	Payload     any
	Identity    uint32
	HasIdentity bool
	Rows        []EventRow
	CueOnTicks  []uint32 // Note-On ticks in the cue zones, for the strip
	EndTick     uint32
}

// Load decodes a .mid file through the third-party SMF reader and runs
// the sync-protocol parsers over the raw bytes.
func Load(path string) (*FileInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("not a readable SMF: %w", err)
	}

	info := &FileInfo{Path: path}
	info.Payload = midisync.ParsePayload(raw)
	info.Identity, info.HasIdentity = midisync.ParseIdentity(raw)

	for _, track := range s.Tracks {
		var tick uint32
		for _, ev := range track {
			tick += ev.Delta

			var bpm float64
			var ch, key, vel, cc, val uint8
			switch {
			case ev.Message.GetMetaTempo(&bpm):
				info.BPM = bpm
			case ev.Message.GetNoteOn(&ch, &key, &vel):
				if key <= midisync.NoteLoopOff {
					info.CueOnTicks = append(info.CueOnTicks, tick)
				}
			case ev.Message.GetControlChange(&ch, &cc, &val):
				// shown via the generic row below
			}

			info.Rows = append(info.Rows, EventRow{Tick: tick, Desc: ev.Message.String()})
		}
		if tick > info.EndTick {
			info.EndTick = tick
		}
	}
	return info, nil
}

type Model struct {
	Info   *FileInfo
	Theme  *theme.Theme
	scroll int
	height int
}

func NewModel(info *FileInfo, th *theme.Theme) Model {
	return Model{Info: info, Theme: th, height: 24}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "j", "down":
			if m.scroll < len(m.Info.Rows)-1 {
				m.scroll++
			}
		case "k", "up":
			if m.scroll > 0 {
				m.scroll--
			}
		case "g":
			m.scroll = 0
		case "G":
			m.scroll = max(0, len(m.Info.Rows)-1)
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) View() string {
	var out strings.Builder
	t := m.Theme

	out.WriteString(t.TitleStyle().Render("SYNC FILE  "+m.Info.Path) + "\n\n")

	if m.Info.BPM > 0 {
		out.WriteString(fmt.Sprintf("Tempo: %.2f BPM\n", m.Info.BPM))
	}
	if m.Info.HasIdentity {
		out.WriteString(fmt.Sprintf("Identity: %d\n", m.Info.Identity))
	} else {
		out.WriteString(t.MutedStyle().Render("Identity: (none)") + "\n")
	}

	if m.Info.Payload != nil {
		pretty, err := json.MarshalIndent(m.Info.Payload, "", "  ")
		if err == nil {
			out.WriteString("Payload:\n" + string(pretty) + "\n")
		}
	} else {
		out.WriteString(t.MutedStyle().Render("Payload: (none)") + "\n")
	}

	out.WriteString("\n" + m.renderStrip() + "\n\n")

	// Scrolling event window
	visible := max(4, m.height-16)
	start := m.scroll
	if start > len(m.Info.Rows) {
		start = len(m.Info.Rows)
	}
	end := min(len(m.Info.Rows), start+visible)
	for i := start; i < end; i++ {
		row := m.Info.Rows[i]
		out.WriteString(fmt.Sprintf("%7d  %s\n", row.Tick, row.Desc))
	}

	out.WriteString("\n")
	out.WriteString(widgets.RenderKeyHelp([]widgets.KeySection{
		{Keys: []widgets.KeyBinding{
			{Key: "j / k", Desc: "scroll events"},
			{Key: "g / G", Desc: "jump to start/end"},
			{Key: "q", Desc: "quit"},
		}},
	}))

	return out.String()
}

// renderStrip buckets cue Note-Ons across the file duration into a
// fixed-width lane.
func (m Model) renderStrip() string {
	const width = 64

	empty := [3]uint8(m.Theme.Palette.Lookup(theme.RoleSurface))
	hit := [3]uint8(m.Theme.Palette.Lookup(theme.RoleActive))

	cells := make([][3]uint8, width)
	for i := range cells {
		cells[i] = empty
	}
	if m.Info.EndTick > 0 {
		for _, tick := range m.Info.CueOnTicks {
			i := int(uint64(tick) * uint64(width-1) / uint64(m.Info.EndTick))
			cells[i] = hit
		}
	}

	return widgets.RenderStrip(cells) + "\n" +
		widgets.RenderLegendItem(hit, "Cues", "slide/action triggers across the track")
}
