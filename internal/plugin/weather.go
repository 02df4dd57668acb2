package plugin

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"time"

	"JarvisGolang/internal/entity"
	"JarvisGolang/pkg/conversation"
	"JarvisGolang/pkg/log"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const openWeatherBaseURL = "http://api.openweathermap.org/data/2.5/weather"

var weatherTexts = map[string]map[string]string{
	"es": {
		"report":           "En %s, la temperatura es de %d°C con %s. La humedad es del %d%%.",
		"ask_city":         "¿Para qué ciudad te gustaría saber el clima?",
		"not_found":        "No pude encontrar el clima para %s. Por favor, revisa el nombre.",
		"api_key_error":    "Lo siento, la API key para el servicio de clima no está configurada.",
		"connection_error": "Error de conexión al obtener el clima para %s.",
	},
	"en": {
		"report":           "In %s, the temperature is %d°F with %s. The humidity is at %d%%.",
		"ask_city":         "For which city would you like to know the weather?",
		"not_found":        "I couldn't find the weather for %s. Please check the name.",
		"api_key_error":    "Sorry, the API key for the weather service is not configured.",
		"connection_error": "There was a connection error while getting the weather for %s.",
	},
}

type weatherPlugin struct {
	apiKey string
	client *http.Client
	log    *logrus.Logger
}

func NewWeather(logger *logrus.Logger) Plugin {
	apiKey := os.Getenv("OPENWEATHER_API_KEY")
	if apiKey == "" {
		logger.Warn("OPENWEATHER_API_KEY is not set, weather plugin may not work")
	}

	return &weatherPlugin{
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    logger,
	}
}

func (p *weatherPlugin) Name() string { return "weather" }

func (p *weatherPlugin) Description() string {
	return "Consulta el estado del tiempo actual para una ciudad. / Gets the current weather for a city."
}

func (p *weatherPlugin) CanHandle(text string, snap conversation.Snapshot) bool {
	return false
}

type openWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

func (p *weatherPlugin) Handle(ctx context.Context, req Request) (Result, error) {
	texts := weatherTexts[req.Language]
	if texts == nil {
		texts = weatherTexts["en"]
	}

	if p.apiKey == "" {
		return Result{Response: texts["api_key_error"]}, nil
	}

	city := cityFromEntities(req.Entities)
	if city == "" {
		if v, ok := req.Context.Data["last_weather_city"].(string); ok {
			city = v
		}
	}
	if city == "" {
		return Result{Response: texts["ask_city"]}, nil
	}

	units := "imperial"
	if req.Language == "es" {
		units = "metric"
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", p.apiKey)
	q.Set("units", units)
	q.Set("lang", req.Language)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, openWeatherBaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.log.WithFields(log.Fields{
			"city":  city,
			"error": err.Error(),
		}).Error("Failed to contact OpenWeatherMap")
		return Result{Response: fmt.Sprintf(texts["connection_error"], city)}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		p.log.WithFields(log.Fields{
			"city": city,
		}).Warn("City not found on OpenWeatherMap")
		return Result{Response: fmt.Sprintf(texts["not_found"], city)}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Result{Response: fmt.Sprintf(texts["connection_error"], city)}, nil
	}

	var data openWeatherResponse
	if err := jsoniter.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Result{Response: fmt.Sprintf(texts["connection_error"], city)}, nil
	}

	desc := "N/A"
	if len(data.Weather) > 0 {
		desc = data.Weather[0].Description
	}

	report := fmt.Sprintf(texts["report"],
		cases.Title(language.Und).String(city),
		int(math.Round(data.Main.Temp)),
		desc,
		data.Main.Humidity,
	)

	p.log.WithFields(log.Fields{
		"city": city,
	}).Info("Weather report generated")

	return Result{
		Response:       report,
		ContextUpdates: map[string]string{"last_weather_city": city},
	}, nil
}

func cityFromEntities(entities []entity.Entity) string {
	for _, e := range entities {
		if e.Label == "GPE" || e.Label == "LOC" {
			return e.Text
		}
	}
	return ""
}
