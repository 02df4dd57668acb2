package plugin

import (
	"context"
	"fmt"
	"os"
	"time"

	"JarvisGolang/pkg/conversation"
	"JarvisGolang/pkg/log"

	"github.com/sirupsen/logrus"
)

var (
	spanishDays = []string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

	spanishMonths = []string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
)

type clockPlugin struct {
	location *time.Location
	now      func() time.Time
	log      *logrus.Logger
}

func NewClock(logger *logrus.Logger) Plugin {
	loc := time.Local
	if tz := os.Getenv("ASSISTANT_TIMEZONE"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			logger.WithFields(log.Fields{
				"timezone": tz,
				"error":    err.Error(),
			}).Warn("Invalid ASSISTANT_TIMEZONE, falling back to local time")
		} else {
			loc = parsed
		}
	}

	return &clockPlugin{
		location: loc,
		now:      time.Now,
		log:      logger,
	}
}

func (p *clockPlugin) Name() string { return "clock" }

func (p *clockPlugin) Description() string {
	return "Dice la hora y la fecha actual. / Tells the current time and date."
}

// CanHandle is a flat false: time and date requests always arrive via
// the intent router, never through the utterance census.
func (p *clockPlugin) CanHandle(text string, snap conversation.Snapshot) bool {
	return false
}

func (p *clockPlugin) Handle(ctx context.Context, req Request) (Result, error) {
	now := p.now().In(p.location)

	if req.Intent == "INTENT_GET_DATE" {
		return Result{Response: p.dateReport(now, req.Language)}, nil
	}
	return Result{Response: p.timeReport(now, req.Language)}, nil
}

func (p *clockPlugin) timeReport(now time.Time, lang string) string {
	timeStr := now.Format("03:04 PM")
	if lang == "es" {
		return fmt.Sprintf("Son las %s.", timeStr)
	}
	return fmt.Sprintf("The current time is %s.", timeStr)
}

func (p *clockPlugin) dateReport(now time.Time, lang string) string {
	if lang == "es" {
		day := spanishDays[int(now.Weekday())]
		month := spanishMonths[int(now.Month())-1]
		return fmt.Sprintf("Hoy es %s, %d de %s de %d.", day, now.Day(), month, now.Year())
	}
	return fmt.Sprintf("Today is %s.", now.Format("Monday, January 02, 2006"))
}
