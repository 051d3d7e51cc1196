package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shilo-maker/solupresenter-sub006/config"
	"github.com/shilo-maker/solupresenter-sub006/debug"
	"github.com/shilo-maker/solupresenter-sub006/midisync"
	"github.com/shilo-maker/solupresenter-sub006/theme"
	"github.com/shilo-maker/solupresenter-sub006/tui"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--debug" {
		if err := debug.Enable(); err != nil {
			fmt.Printf("Warning: debug log unavailable: %v\n", err)
		}
		defer debug.Disable()
		args = args[1:]
	}

	if len(args) == 0 {
		usage()
		return
	}

	switch args[0] {
	case "export":
		export(args[1:])
	case "payload":
		payload(args[1:])
	case "identity":
		identity(args[1:])
	case "inspect":
		inspect(args[1:])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("SoluPresenter MIDI sync tool")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  export <item.json> [out.mid]  - encode a cue list to a sync file")
	fmt.Println("  payload <file.mid>            - print the embedded item payload")
	fmt.Println("  identity <file.mid> [key]     - print the identity hash (and compare a key)")
	fmt.Println("  inspect <file.mid>            - interactive event viewer")
	fmt.Println("")
	fmt.Println("Flags: --debug (log to ~/.config/solupresenter/midisync.log)")
}

// itemSpec is the on-disk shape the presentation layer hands us.
type itemSpec struct {
	Title    string              `json:"title"`
	ItemType string              `json:"itemType,omitempty"`
	BPM      float64             `json:"bpm,omitempty"`
	Duration float64             `json:"duration"`
	Events   []midisync.NoteEvent `json:"events"`
	Slides   []string            `json:"slides,omitempty"`
	Payload  any                 `json:"payload,omitempty"`
}

func export(args []string) {
	if len(args) < 1 {
		usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	var spec itemSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		fmt.Printf("Error: invalid item file: %v\n", err)
		os.Exit(1)
	}

	bpm := spec.BPM
	if bpm == 0 {
		bpm = cfg.DefaultBPM
	}

	f := midisync.SyncFile{
		Events:   spec.Events,
		Duration: spec.Duration,
		BPM:      bpm,
		ItemType: parseItemType(spec.ItemType),
		Payload:  spec.Payload,
	}
	if f.ItemType == midisync.ItemSong {
		f.Key = midisync.SongKey(spec.Title, spec.Slides)
	} else {
		f.Key = midisync.ItemKey(f.ItemType.String(), spec.Title)
	}
	debug.Log("export", "item=%q type=%s bpm=%.1f events=%d", spec.Title, f.ItemType, bpm, len(f.Events))

	buf, err := f.Encode()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	out := outputPath(args, spec.Title, cfg.ExportDir)
	if err := os.WriteFile(out, buf, 0644); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d bytes, hash %d)\n", out, len(buf), midisync.HashKey(f.Key))
}

func outputPath(args []string, title, exportDir string) string {
	if len(args) >= 2 {
		return args[1]
	}
	name := strings.Join(strings.Fields(strings.ToLower(title)), "-")
	if name == "" {
		name = "sync"
	}
	return filepath.Join(exportDir, name+".mid")
}

func parseItemType(s string) midisync.ItemType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "song":
		return midisync.ItemSong
	case "bible":
		return midisync.ItemBible
	case "prayer":
		return midisync.ItemPrayer
	case "announcement":
		return midisync.ItemAnnouncement
	}
	return midisync.ItemSong
}

func payload(args []string) {
	if len(args) < 1 {
		usage()
		return
	}
	buf, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	p := midisync.ParsePayload(buf)
	if p == nil {
		fmt.Println("No payload found")
		os.Exit(1)
	}
	pretty, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(pretty))
}

func identity(args []string) {
	if len(args) < 1 {
		usage()
		return
	}
	buf, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	hash, ok := midisync.ParseIdentity(buf)
	if !ok {
		fmt.Println("No identity fingerprint found")
		os.Exit(1)
	}
	fmt.Printf("Identity hash: %d\n", hash)

	if len(args) >= 2 {
		want := midisync.HashKey(args[1])
		if want == hash {
			fmt.Printf("Key %q matches\n", args[1])
		} else {
			fmt.Printf("Key %q does NOT match (hash %d)\n", args[1], want)
		}
	}
}

func inspect(args []string) {
	if len(args) < 1 {
		usage()
		return
	}

	info, err := tui.Load(args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cfg, _ := config.Load()
	if cfg != nil {
		cfg.UI.LastFile = args[0]
		cfg.Save()
	}

	th := theme.New(theme.Default())
	m := tui.NewModel(info, th)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
