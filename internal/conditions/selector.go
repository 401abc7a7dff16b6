package conditions

import (
	"sort"
)

// Selection holds at most one representative window per quality band for a
// run. A nil field means the band had no candidates.
type Selection struct {
	Green *ScoredWindow
	Amber *ScoredWindow
}

// SelectWindows partitions scored windows into GREEN and AMBER pools by their
// best raw score and picks one representative per pool: highest score first,
// earliest start breaking ties. Empty pools yield nil, not an error.
func SelectWindows(scored []ScoredWindow) Selection {
	var greens, ambers []ScoredWindow
	for _, w := range scored {
		switch best := w.Best(); {
		case best >= 10:
			greens = append(greens, w)
		case best >= 7:
			ambers = append(ambers, w)
		}
	}

	return Selection{
		Green: pickBest(greens),
		Amber: pickBest(ambers),
	}
}

func pickBest(pool []ScoredWindow) *ScoredWindow {
	if len(pool) == 0 {
		return nil
	}
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Best() != pool[j].Best() {
			return pool[i].Best() > pool[j].Best()
		}
		return pool[i].Start.Before(pool[j].Start)
	})
	best := pool[0]
	return &best
}
