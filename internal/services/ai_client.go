package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/vaulto-note/backend/internal/config"
)

// AIClient proxies voice transcription to a local Whisper service and text
// improvement to an OpenAI-compatible LLM endpoint. Both calls run under
// bounded timeouts; any upstream failure surfaces as ErrAIUpstream so the
// boundary can answer 502 without crashing the request.
type AIClient struct {
	cfg           *config.Config
	whisperClient *http.Client
	llmClient     *http.Client
	log           *zap.Logger
}

func NewAIClient(cfg *config.Config, log *zap.Logger) *AIClient {
	return &AIClient{
		cfg:           cfg,
		whisperClient: &http.Client{Timeout: cfg.WhisperAPITimeout},
		llmClient:     &http.Client{Timeout: cfg.LLMTimeout},
		log:           log,
	}
}

// Transcribe uploads the audio to Whisper and returns the transcript text.
func (c *AIClient) Transcribe(ctx context.Context, filename, contentType string, audio []byte, language string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if language != "" {
		if err := mw.WriteField("language", language); err != nil {
			return "", err
		}
	}

	if filename == "" {
		filename = "audio.m4a"
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}
	_ = contentType // whisper.cpp определяет формат по содержимому файла

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.WhisperAPIURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.whisperClient.Do(req)
	if err != nil {
		c.log.Error("whisper request failed", zap.Error(err))
		return "", fmt.Errorf("%w: whisper not reachable", ErrAIUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		c.log.Error("whisper returned error", zap.Int("status", resp.StatusCode), zap.ByteString("body", b))
		return "", fmt.Errorf("%w: whisper returned %d", ErrAIUpstream, resp.StatusCode)
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: invalid whisper response", ErrAIUpstream)
	}

	text := extractWhisperText(payload)
	if text == "" {
		c.log.Error("whisper response missing text")
		return "", fmt.Errorf("%w: empty transcription", ErrAIUpstream)
	}
	return text, nil
}

// Whisper deployments differ in where they put the transcript.
func extractWhisperText(payload map[string]json.RawMessage) string {
	for _, key := range []string{"text", "transcription", "result"} {
		raw, ok := payload[key]
		if !ok {
			continue
		}

		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return strings.TrimSpace(s)
		}

		var nested struct {
			Text          string `json:"text"`
			Transcription string `json:"transcription"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil {
			if nested.Text != "" {
				return strings.TrimSpace(nested.Text)
			}
			if nested.Transcription != "" {
				return strings.TrimSpace(nested.Transcription)
			}
		}
	}
	return ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message *chatMessage `json:"message"`
		Text    string       `json:"text"`
	} `json:"choices"`
	Response string `json:"response"`
	Text     string `json:"text"`
}

// Improve rewrites text per the prompt via the configured LLM. Returns the
// improved text and the model that produced it.
func (c *AIClient) Improve(ctx context.Context, prompt, text, modelOverride string) (string, string, error) {
	model := modelOverride
	if model == "" {
		model = c.cfg.LLMModel
	}

	payload := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: c.cfg.LLMSystemPrompt},
			{Role: "user", Content: mergePrompt(prompt, text)},
		},
		Temperature: c.cfg.LLMTemperature,
		Stream:      false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.LLMAPIURL, bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.llmClient.Do(req)
	if err != nil {
		c.log.Error("llm request failed", zap.Error(err))
		return "", "", fmt.Errorf("%w: llm not reachable", ErrAIUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		c.log.Error("llm returned error", zap.Int("status", resp.StatusCode), zap.ByteString("body", b))
		return "", "", fmt.Errorf("%w: llm returned %d", ErrAIUpstream, resp.StatusCode)
	}

	var data chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", "", fmt.Errorf("%w: invalid llm response", ErrAIUpstream)
	}

	result := ""
	if len(data.Choices) > 0 {
		if data.Choices[0].Message != nil {
			result = data.Choices[0].Message.Content
		}
		if result == "" {
			result = data.Choices[0].Text
		}
	}
	if result == "" {
		result = data.Response
	}
	if result == "" {
		result = data.Text
	}

	result = strings.TrimSpace(result)
	if result == "" {
		c.log.Error("llm response missing text")
		return "", "", fmt.Errorf("%w: empty llm response", ErrAIUpstream)
	}
	return result, model, nil
}

var placeholderRe = regexp.MustCompile(`(?i)\{text\}`)

// mergePrompt embeds the user text into the prompt, with or without a
// {text} placeholder present.
func mergePrompt(prompt, text string) string {
	prompt = strings.TrimSpace(prompt)
	text = strings.TrimSpace(text)

	if prompt == "" {
		return text
	}
	if placeholderRe.MatchString(prompt) {
		return placeholderRe.ReplaceAllString(prompt, fmt.Sprintf("%q", text))
	}
	return fmt.Sprintf("%s\n\n%q", prompt, text)
}
