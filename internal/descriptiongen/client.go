// Package descriptiongen реализует клиент внешнего AI-сервиса,
// генерирующего описания тренировочных планов по названию, длительности
// и имени тренера. Ошибки клиента никогда не блокируют создание плана:
// каталог подменяет их запасным текстом.
package descriptiongen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/fitplanhub/internal/config"
)

// Fallback — запасной текст описания на случай недоступности сервиса.
const Fallback = "Error connecting to AI assistant. Please write description manually."

// Generator описывает контракт генератора описаний для каталога.
type Generator interface {
	Generate(ctx context.Context, title string, durationDays int, trainerName string) (string, error)
}

// Client отправляет запросы генерации в REST API модели.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент генерации описаний.
func NewClient(cfg config.DescriptionGen) *Client {
	timeout := cfg.TimeoutGen
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate запрашивает у модели описание плана. Возвращает ошибку,
// если сервис недоступен, ответил не-2xx или прислал пустой результат.
func (c *Client) Generate(ctx context.Context, title string, durationDays int, trainerName string) (string, error) {
	const op = "descriptiongen.Generate"

	if c.apiKey == "" {
		return "", fmt.Errorf("%s: api key is not configured", op)
	}

	prompt := buildPrompt(title, durationDays, trainerName)
	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, &buf)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%s: %w", op, errors.New("empty response"))
	}

	text := strings.TrimSpace(genResp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("%s: %w", op, errors.New("empty response"))
	}
	return text, nil
}

func buildPrompt(title string, durationDays int, trainerName string) string {
	return fmt.Sprintf(
		"You are an expert fitness copywriter assisting a trainer named %s. "+
			"Write a compelling, energetic, and professional description for a fitness plan "+
			"titled %q which lasts for %d days. "+
			"Structure the response: 1. A catchy hook. 2. Key benefits (bullet points). 3. Who this is for. "+
			"Keep it under 200 words. Format as plain text (no markdown symbols like ** or #).",
		trainerName, title, durationDays,
	)
}
