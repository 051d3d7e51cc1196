package midisync

import "strings"

// Key construction is policy, not protocol: the goal is that the same
// logical item produces the same key on every machine, even though
// database row IDs differ. Changing these heuristics orphans every
// previously generated file, so they are frozen.

// SongKey builds the canonical identity key for a song: the lower-cased,
// whitespace-normalized title plus the first two words of the first
// non-empty slide text.
func SongKey(title string, slides []string) string {
	key := normalizeKey(title)
	for _, s := range slides {
		words := strings.Fields(normalizeKey(s))
		if len(words) == 0 {
			continue
		}
		if len(words) > 2 {
			words = words[:2]
		}
		if key != "" {
			key += " "
		}
		key += strings.Join(words, " ")
		break
	}
	return key
}

// ItemKey builds the canonical identity key for a non-song item from
// its kind name and whatever fields identify it (book/chapter/verse for
// bible items, the prayer title, and so on). Empty fields are skipped.
func ItemKey(kind string, fields ...string) string {
	parts := []string{normalizeKey(kind)}
	for _, f := range fields {
		if n := normalizeKey(f); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, " ")
}

func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
