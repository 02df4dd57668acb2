package plugin

import (
	"context"
	"testing"

	"JarvisGolang/internal/entity"
	"JarvisGolang/pkg/conversation"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMusicUsesEntities(t *testing.T) {
	p := NewMusic(logrus.New())

	res, err := p.Handle(context.Background(), Request{
		Intent:   "INTENT_PLAY_SONG",
		Text:     "play 'Bohemian Rhapsody' by Queen",
		Language: "en",
		Entities: []entity.Entity{
			{Text: "'Bohemian Rhapsody'", Label: "WORK_OF_ART", Start: 5, End: 24, Source: entity.SourceRule},
			{Text: "Queen", Label: "ORG", Start: 28, End: 33, Source: entity.SourceGeneral},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Trying to play 'Bohemian Rhapsody' Queen...", res.Response)
	assert.Equal(t, "'Bohemian Rhapsody' Queen", res.ContextUpdates["now_playing"])
}

func TestMusicRegexFallback(t *testing.T) {
	p := NewMusic(logrus.New())

	res, err := p.Handle(context.Background(), Request{
		Intent:   "INTENT_PLAY_MUSIC",
		Text:     "reproducir bad bunny en spotify",
		Language: "es",
	})
	require.NoError(t, err)

	assert.Equal(t, "Intentando reproducir bad bunny...", res.Response)
	assert.Equal(t, "bad bunny", res.ContextUpdates["now_playing"])
}

func TestMusicNoQueryPlaysDefault(t *testing.T) {
	p := NewMusic(logrus.New())

	res, err := p.Handle(context.Background(), Request{
		Intent:   "INTENT_PLAY_MUSIC",
		Text:     "música",
		Language: "es",
	})
	require.NoError(t, err)
	assert.Equal(t, "Reproduciendo tu música.", res.Response)
	assert.Empty(t, res.ContextUpdates)
}

func TestMusicStop(t *testing.T) {
	p := NewMusic(logrus.New())

	res, err := p.Handle(context.Background(), Request{
		Intent:   "INTENT_STOP",
		Text:     "stop the music",
		Language: "en",
	})
	require.NoError(t, err)
	assert.Equal(t, "Music stopped.", res.Response)
	assert.Equal(t, "", res.ContextUpdates["now_playing"])
}

func TestMusicClaimsUtterancesByKeyword(t *testing.T) {
	p := NewMusic(logrus.New())

	var snap conversation.Snapshot
	for _, text := range []string{
		"play the song bohemian rhapsody",
		"pon música de jazz",
		"quiero escuchar una canción",
		"put on my workout playlist",
	} {
		assert.True(t, p.CanHandle(text, snap), text)
	}
	assert.False(t, p.CanHandle("what time is it", snap))
	assert.False(t, p.CanHandle("recuérdame comprar pan", snap))
}
