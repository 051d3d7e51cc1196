package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// smfdump prints the chunk structure and event stream of any .mid file.
// Useful when checking what a DAW actually wrote back out.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: smfdump <file.mid>")
		return
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	dumpChunks(raw)

	s, err := smf.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("\nNot readable as SMF: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nTime format: %s\n", s.TimeFormat)
	for i, track := range s.Tracks {
		fmt.Printf("\n=== Track %d (%d events) ===\n", i, len(track))
		var tick uint32
		for _, ev := range track {
			tick += ev.Delta
			fmt.Printf("%7d  +%-5d %s\n", tick, ev.Delta, ev.Message.String())
		}
	}
}

func dumpChunks(raw []byte) {
	fmt.Println("=== Chunks ===")
	if len(raw) < 8 {
		fmt.Println("(file too short)")
		return
	}

	off := 0
	for off+8 <= len(raw) {
		typ := string(raw[off : off+4])
		length := int(binary.BigEndian.Uint32(raw[off+4 : off+8]))
		fmt.Printf("%6d  %q  %d bytes\n", off, typ, length)
		if length < 0 || off+8+length <= off {
			fmt.Println("(bad chunk length, stopping)")
			return
		}
		off += 8 + length
	}
	if off != len(raw) {
		fmt.Printf("(%d trailing bytes)\n", len(raw)-off)
	}
}
