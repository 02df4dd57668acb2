package plugin

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"JarvisGolang/pkg/conversation"
	"JarvisGolang/pkg/log"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	reminderKeywords = []string{
		"recuérdame", "recordatorio", "reminder", "remind me",
		"agenda", "evento", "programar",
	}

	explicitDatetime = regexp.MustCompile(`\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}`)
	relativeDelay    = regexp.MustCompile(`(?i)(?:in|en)\s+(\d+)\s+(minutes?|minutos?|hours?|horas?|seconds?|segundos?)`)
	reminderPrefix   = regexp.MustCompile(`(?i)^(recuérdame|recordatorio|reminder|remind me)\s*(que|de|sobre|to)?\s*`)
)

var reminderTexts = map[string]map[string]string{
	"es": {
		"scheduled":   "De acuerdo, te recordaré: %s.",
		"no_time":     "No pude determinar la hora para el recordatorio. Por favor, especifica cuándo, por ejemplo 'en 30 minutos'.",
		"in_past":     "Esa hora ya pasó. Dame una hora en el futuro.",
		"cancelled":   "He cancelado %d recordatorio(s).",
		"none_active": "No tienes recordatorios activos.",
	},
	"en": {
		"scheduled":   "Alright, I will remind you: %s.",
		"no_time":     "I could not figure out when to remind you. Please say when, for example 'in 30 minutes'.",
		"in_past":     "That time is already in the past. Give me a time in the future.",
		"cancelled":   "I cancelled %d reminder(s).",
		"none_active": "You have no active reminders.",
	},
}

type reminder struct {
	id    string
	task  string
	dueAt time.Time
	timer *time.Timer
}

type remindersPlugin struct {
	mu     sync.Mutex
	active map[string]*reminder
	now    func() time.Time
	log    *logrus.Logger
}

func NewReminders(logger *logrus.Logger) Plugin {
	return &remindersPlugin{
		active: make(map[string]*reminder),
		now:    time.Now,
		log:    logger,
	}
}

func (p *remindersPlugin) Name() string { return "reminders" }

func (p *remindersPlugin) Description() string {
	return "Programa recordatorios y alarmas. / Schedules reminders and alarms."
}

func (p *remindersPlugin) CanHandle(text string, snap conversation.Snapshot) bool {
	lowered := strings.ToLower(text)
	for _, kw := range reminderKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

func (p *remindersPlugin) Handle(ctx context.Context, req Request) (Result, error) {
	texts := reminderTexts[req.Language]
	if texts == nil {
		texts = reminderTexts["en"]
	}

	if req.Intent == "INTENT_CANCEL" {
		n := p.cancelAll()
		if n == 0 {
			return Result{Response: texts["none_active"]}, nil
		}
		return Result{Response: fmt.Sprintf(texts["cancelled"], n)}, nil
	}

	dueAt, task, ok := p.parseReminder(req.Text)
	if !ok {
		return Result{Response: texts["no_time"]}, nil
	}
	if !dueAt.After(p.now()) {
		return Result{Response: texts["in_past"]}, nil
	}

	p.schedule(task, dueAt)

	return Result{
		Response:       fmt.Sprintf(texts["scheduled"], task),
		ContextUpdates: map[string]string{"last_reminder_task": task},
	}, nil
}

// parseReminder looks for an explicit "YYYY-MM-DD HH:MM:SS" timestamp
// first, then a relative delay like "in 30 minutes" or "en 2 horas".
func (p *remindersPlugin) parseReminder(text string) (time.Time, string, bool) {
	if m := explicitDatetime.FindString(text); m != "" {
		dueAt, err := time.ParseInLocation("2006-01-02 15:04:05", m, time.Local)
		if err == nil {
			task := cleanReminderTask(strings.Replace(text, m, "", 1))
			return dueAt, task, true
		}
	}

	if m := relativeDelay.FindStringSubmatch(text); m != nil {
		amount, err := strconv.Atoi(m[1])
		if err != nil || amount <= 0 {
			return time.Time{}, "", false
		}

		var unit time.Duration
		switch {
		case strings.HasPrefix(strings.ToLower(m[2]), "h"):
			unit = time.Hour
		case strings.HasPrefix(strings.ToLower(m[2]), "s"):
			unit = time.Second
		default:
			unit = time.Minute
		}

		task := cleanReminderTask(strings.Replace(text, m[0], "", 1))
		return p.now().Add(time.Duration(amount) * unit), task, true
	}

	return time.Time{}, "", false
}

func (p *remindersPlugin) schedule(task string, dueAt time.Time) {
	id := uuid.New().String()
	delay := time.Until(dueAt)

	p.mu.Lock()
	defer p.mu.Unlock()

	r := &reminder{id: id, task: task, dueAt: dueAt}
	r.timer = time.AfterFunc(delay, func() {
		p.fire(id)
	})
	p.active[id] = r

	p.log.WithFields(log.Fields{
		"reminder_id": id,
		"task":        task,
		"due_at":      dueAt.Format(time.RFC3339),
	}).Info("Reminder scheduled")
}

func (p *remindersPlugin) fire(id string) {
	p.mu.Lock()
	r, ok := p.active[id]
	delete(p.active, id)
	p.mu.Unlock()

	if !ok {
		return
	}

	p.log.WithFields(log.Fields{
		"reminder_id": r.id,
		"task":        r.task,
	}).Info("Reminder due")
}

func (p *remindersPlugin) cancelAll() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.active)
	for id, r := range p.active {
		r.timer.Stop()
		delete(p.active, id)
	}
	return n
}

func cleanReminderTask(text string) string {
	task := strings.TrimSpace(text)
	task = reminderPrefix.ReplaceAllString(task, "")
	task = strings.Trim(task, " ,.")
	if task == "" {
		task = "recordatorio"
	}
	return task
}
