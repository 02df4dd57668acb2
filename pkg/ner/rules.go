package ner

import (
	"regexp"
	"strings"

	"JarvisGolang/internal/entity"
)

type rulePattern struct {
	label string
	re    *regexp.Regexp
}

// RuleMatcher is the deterministic first tier of entity extraction. It
// targets the domain categories the statistical taggers are weakest at:
// clock times, calendar dates, phone numbers and quoted titles.
type RuleMatcher struct {
	patterns []rulePattern
}

func NewRuleMatcher() *RuleMatcher {
	return &RuleMatcher{
		patterns: []rulePattern{
			// Quoted song/movie titles, e.g. 'Bohemian Rhapsody'.
			{label: "WORK_OF_ART", re: regexp.MustCompile(`'[^']+'|"[^"]+"`)},
			// 5 pm, 5:30, a las 7, at 11 am.
			{label: "TIME", re: regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s?(?:am|pm)?\b|\b\d{1,2}\s?(?:am|pm)\b|\b(?:a las|at)\s\d{1,2}\b`)},
			// 12/05/2026, mañana, hoy, tomorrow, today, weekday names.
			{label: "DATE", re: regexp.MustCompile(`(?i)\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b(?:mañana|hoy|ayer|tomorrow|today|yesterday|lunes|martes|miércoles|jueves|viernes|sábado|domingo|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)},
			// International-ish phone numbers with at least 7 digits.
			{label: "PHONE", re: regexp.MustCompile(`\+?\d[\d\s\-]{5,}\d`)},
		},
	}
}

// Extract runs every pattern over the text and returns labeled spans with
// byte offsets. Patterns run in declaration order and a later pattern never
// claims a span an earlier one already covered, so the output of a single
// matcher is internally overlap-free.
func (m *RuleMatcher) Extract(text string) []entity.Entity {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var entities []entity.Entity
	var covered []span

	for _, p := range m.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			candidate := span{start: loc[0], end: loc[1]}
			taken := false
			for _, c := range covered {
				if overlaps(candidate, c) {
					taken = true
					break
				}
			}
			if taken {
				continue
			}
			entities = append(entities, entity.Entity{
				Text:       text[loc[0]:loc[1]],
				Label:      p.label,
				Start:      loc[0],
				End:        loc[1],
				Source:     entity.SourceRule,
				Confidence: 1.0,
			})
			covered = append(covered, candidate)
		}
	}

	return entities
}
