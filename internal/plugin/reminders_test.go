package plugin

import (
	"context"
	"testing"
	"time"

	"JarvisGolang/pkg/conversation"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReminders() *remindersPlugin {
	return &remindersPlugin{
		active: make(map[string]*reminder),
		now:    time.Now,
		log:    logrus.New(),
	}
}

func TestRemindersRelativeDelayEnglish(t *testing.T) {
	p := newTestReminders()

	dueAt, task, ok := p.parseReminder("remind me to buy milk in 30 minutes")
	require.True(t, ok)
	assert.Equal(t, "buy milk", task)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), dueAt, 2*time.Second)
}

func TestRemindersRelativeDelaySpanish(t *testing.T) {
	p := newTestReminders()

	dueAt, task, ok := p.parseReminder("recuérdame llamar a Juan en 2 horas")
	require.True(t, ok)
	assert.Equal(t, "llamar a Juan", task)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), dueAt, 2*time.Second)
}

func TestRemindersExplicitTimestamp(t *testing.T) {
	p := newTestReminders()

	dueAt, task, ok := p.parseReminder("reminder water the plants 2030-01-02 15:04:05")
	require.True(t, ok)
	assert.Equal(t, "water the plants", task)

	want := time.Date(2030, time.January, 2, 15, 4, 5, 0, time.Local)
	assert.Equal(t, want, dueAt)
}

func TestRemindersUnparseableTime(t *testing.T) {
	p := newTestReminders()

	res, err := p.Handle(context.Background(), Request{
		Intent:   "INTENT_SET_REMINDER",
		Text:     "remind me to do something sometime",
		Language: "en",
	})
	require.NoError(t, err)
	assert.Contains(t, res.Response, "could not figure out")
}

func TestRemindersScheduleAndCancel(t *testing.T) {
	p := newTestReminders()

	res, err := p.Handle(context.Background(), Request{
		Intent:   "INTENT_SET_REMINDER",
		Text:     "remind me to stretch in 5 minutes",
		Language: "en",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alright, I will remind you: stretch.", res.Response)
	assert.Equal(t, "stretch", res.ContextUpdates["last_reminder_task"])

	res, err = p.Handle(context.Background(), Request{
		Intent:   "INTENT_CANCEL",
		Text:     "cancel my reminders",
		Language: "en",
	})
	require.NoError(t, err)
	assert.Equal(t, "I cancelled 1 reminder(s).", res.Response)
}

func TestRemindersClaimUtterancesByKeyword(t *testing.T) {
	p := newTestReminders()

	var snap conversation.Snapshot
	assert.True(t, p.CanHandle("recuérdame comprar pan", snap))
	assert.True(t, p.CanHandle("set a reminder for tomorrow", snap))
	assert.True(t, p.CanHandle("add this to my agenda", snap))
	assert.False(t, p.CanHandle("play some music", snap))
}

func TestRemindersCancelWithNoneActive(t *testing.T) {
	p := newTestReminders()

	res, err := p.Handle(context.Background(), Request{
		Intent:   "INTENT_CANCEL",
		Text:     "cancela los recordatorios",
		Language: "es",
	})
	require.NoError(t, err)
	assert.Equal(t, "No tienes recordatorios activos.", res.Response)
}
