package plugin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"JarvisGolang/pkg/conversation"
	"JarvisGolang/pkg/log"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const newsAPIBaseURL = "https://newsapi.org/v2/top-headlines"

var newsTexts = map[string]map[string]string{
	"es": {
		"headlines_intro":  "Aquí tienes los titulares:",
		"no_articles":      "No se encontraron noticias en este momento.",
		"api_key_error":    "Lo siento, la API key para el servicio de noticias no está configurada.",
		"api_status_error": "Error al obtener noticias: La API reportó un problema.",
		"connection_error": "Error de conexión al obtener noticias.",
	},
	"en": {
		"headlines_intro":  "Here are the top headlines:",
		"no_articles":      "No news articles were found at this time.",
		"api_key_error":    "Sorry, the API key for the news service is not configured.",
		"api_status_error": "Error getting news: The API reported a problem.",
		"connection_error": "There was a connection error while getting the news.",
	},
}

type newsPlugin struct {
	apiKey string
	client *http.Client
	log    *logrus.Logger
}

func NewNews(logger *logrus.Logger) Plugin {
	apiKey := os.Getenv("NEWSAPI_API_KEY")
	if apiKey == "" {
		logger.Warn("NEWSAPI_API_KEY is not set, news plugin may not work")
	}

	return &newsPlugin{
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    logger,
	}
}

func (p *newsPlugin) Name() string { return "news" }

func (p *newsPlugin) Description() string {
	return "Obtiene los titulares de noticias más recientes. / Gets the latest news headlines."
}

func (p *newsPlugin) CanHandle(text string, snap conversation.Snapshot) bool {
	return false
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (p *newsPlugin) Handle(ctx context.Context, req Request) (Result, error) {
	texts := newsTexts[req.Language]
	if texts == nil {
		texts = newsTexts["en"]
	}

	if p.apiKey == "" {
		return Result{Response: texts["api_key_error"]}, nil
	}

	country := "us"
	if req.Language == "es" {
		country = "es"
	}

	q := url.Values{}
	q.Set("country", country)
	q.Set("apiKey", p.apiKey)
	q.Set("pageSize", "5")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, newsAPIBaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Error("Failed to contact NewsAPI")
		return Result{Response: texts["connection_error"]}, nil
	}
	defer resp.Body.Close()

	var data newsAPIResponse
	if err := jsoniter.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Result{Response: texts["connection_error"]}, nil
	}

	if data.Status != "ok" {
		p.log.WithFields(log.Fields{
			"status": data.Status,
		}).Error("NewsAPI reported a problem")
		return Result{Response: texts["api_status_error"]}, nil
	}

	if len(data.Articles) == 0 {
		return Result{Response: texts["no_articles"]}, nil
	}

	var b strings.Builder
	b.WriteString(texts["headlines_intro"])
	for _, a := range data.Articles {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("• %s - %s", a.Title, a.Source.Name))
	}

	p.log.Info("News headlines retrieved successfully")
	return Result{Response: b.String()}, nil
}
