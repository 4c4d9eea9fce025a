package fuzzy

import (
	"math"
	"sort"

	"github.com/antzucaro/matchr"
)

// Ratio devolve a similaridade 0-100 entre duas strings (Jaro-Winkler).
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	return int(math.Round(matchr.JaroWinkler(a, b, false) * 100))
}

// Closest devolve até n candidatos com similaridade >= cutoff (0-1),
// ordenados do mais parecido pro menos. Empates mantêm a ordem de entrada.
func Closest(target string, candidates []string, n int, cutoff float64) []string {
	type scored struct {
		value string
		sim   float64
	}

	var hits []scored
	for _, c := range candidates {
		sim := matchr.JaroWinkler(target, c, false)
		if target == c {
			sim = 1
		}
		if sim >= cutoff {
			hits = append(hits, scored{value: c, sim: sim})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].sim > hits[j].sim })

	if len(hits) > n {
		hits = hits[:n]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.value
	}
	return out
}
