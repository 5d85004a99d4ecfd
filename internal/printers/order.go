package printers

import "sort"

// OrderHashes returns keys ordered by their position in known, followed by
// any keys not in known in ascending order. known may contain hashes absent
// from keys; they are skipped.
func OrderHashes(known []uint32, keys []uint32) []uint32 {
	present := make(map[uint32]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}

	out := make([]uint32, 0, len(keys))
	for _, h := range known {
		if present[h] {
			out = append(out, h)
			delete(present, h)
		}
	}

	rest := make([]uint32, 0, len(present))
	for h := range present {
		rest = append(rest, h)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}
