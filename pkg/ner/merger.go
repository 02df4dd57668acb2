package ner

import (
	"sort"

	"JarvisGolang/internal/entity"

	"github.com/sirupsen/logrus"
)

type span struct {
	start int
	end   int
}

// overlaps reports whether two half-open ranges [a.start,a.end) and
// [b.start,b.end) share at least one position.
func overlaps(a, b span) bool {
	return max(a.start, b.start) < min(a.end, b.end)
}

// Merge reconciles entity spans from the three extractor tiers into one
// non-overlapping list, first-come-wins by trust: every rule entity is
// accepted unconditionally, a specialized-tagger entity only where no rule
// entity covers its span, and a general-tagger entity only where neither of
// the higher tiers does. The result is sorted by start offset.
func Merge(rule, specialized, general []entity.Entity) []entity.Entity {
	merged := make([]entity.Entity, 0, len(rule)+len(specialized)+len(general))
	covered := make([]span, 0, cap(merged))

	accept := func(e entity.Entity) {
		merged = append(merged, e)
		covered = append(covered, span{start: e.Start, end: e.End})
	}

	for _, e := range rule {
		accept(e)
	}

	for _, tier := range [][]entity.Entity{specialized, general} {
		for _, e := range tier {
			candidate := span{start: e.Start, end: e.End}
			blocked := false
			for _, c := range covered {
				if overlaps(candidate, c) {
					blocked = true
					break
				}
			}
			if blocked {
				logrus.WithFields(logrus.Fields{
					"text":   e.Text,
					"label":  e.Label,
					"source": e.Source,
				}).Debug("Dropping entity overlapped by a higher-priority span")
				continue
			}
			accept(e)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Start != merged[j].Start {
			return merged[i].Start < merged[j].Start
		}
		return merged[i].End < merged[j].End
	})

	return merged
}
