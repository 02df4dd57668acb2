package plugin

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"JarvisGolang/internal/entity"
	"JarvisGolang/pkg/conversation"
	"JarvisGolang/pkg/log"

	"github.com/sirupsen/logrus"
)

var (
	// musicKeywords is the claim vocabulary for utterances the intent
	// classifier could not route, both languages checked at once.
	musicKeywords = []string{
		"reproducir", "pon", "escuchar", "música", "canción", "artista",
		"playlist", "sonar",
		"play", "put on", "listen", "music", "song", "artist", "sound", "hear",
	}

	playQuery   = regexp.MustCompile(`(?i)(?:play|reproducir|pon|escuchar)\s+(.+)`)
	trailingApp = regexp.MustCompile(`(?i)\s+(on|en)\s+\w+$`)
)

var musicTexts = map[string]map[string]string{
	"es": {
		"playing":       "Intentando reproducir %s...",
		"playing_plain": "Reproduciendo tu música.",
		"stopped":       "Música detenida.",
	},
	"en": {
		"playing":       "Trying to play %s...",
		"playing_plain": "Playing your music.",
		"stopped":       "Music stopped.",
	},
}

type musicPlugin struct {
	log *logrus.Logger
}

func NewMusic(logger *logrus.Logger) Plugin {
	return &musicPlugin{log: logger}
}

func (p *musicPlugin) Name() string { return "music" }

func (p *musicPlugin) Description() string {
	return "Reproduce música, canciones o listas. / Plays music, songs or playlists."
}

func (p *musicPlugin) CanHandle(text string, snap conversation.Snapshot) bool {
	lowered := strings.ToLower(text)
	for _, kw := range musicKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

func (p *musicPlugin) Handle(ctx context.Context, req Request) (Result, error) {
	texts := musicTexts[req.Language]
	if texts == nil {
		texts = musicTexts["en"]
	}

	if req.Intent == "INTENT_STOP" {
		return Result{
			Response:       texts["stopped"],
			ContextUpdates: map[string]string{"now_playing": ""},
		}, nil
	}

	query := queryFromEntities(req.Entities)
	if query == "" {
		if m := playQuery.FindStringSubmatch(req.Text); m != nil {
			query = strings.TrimSpace(trailingApp.ReplaceAllString(m[1], ""))
		}
	}

	if query == "" {
		p.log.Info("No specific song or artist detected, playing default")
		return Result{Response: texts["playing_plain"]}, nil
	}

	p.log.WithFields(log.Fields{
		"query": query,
	}).Info("Music playback requested")

	return Result{
		Response:       fmt.Sprintf(texts["playing"], query),
		ContextUpdates: map[string]string{"now_playing": query},
	}, nil
}

func queryFromEntities(entities []entity.Entity) string {
	var parts []string
	for _, e := range entities {
		switch e.Label {
		case "WORK_OF_ART", "PERSON", "PER", "ORG":
			parts = append(parts, e.Text)
		}
	}
	return strings.Join(parts, " ")
}
