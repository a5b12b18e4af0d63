package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/YuGyeong-Kim02/mbtifortune/internal/domain"
	"github.com/YuGyeong-Kim02/mbtifortune/internal/ports"
)

// Client implements ports.FortuneTeller via the OpenRouter API.
type Client struct {
	httpClient  *http.Client
	apiKey      func() string
	baseURL     string
	model       string
	temperature float64
	logger      *slog.Logger
}

// NewClient builds a client. apiKey is called per request so the credential
// is read from the environment at request time.
func NewClient(httpClient *http.Client, apiKey func() string, baseURL, model string, temperature float64, logger *slog.Logger) *Client {
	return &Client{
		httpClient:  httpClient,
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: temperature,
		logger:      logger,
	}
}

// chatRequest / chatResponse mirror the OpenAI-compatible API shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

// messageContent is the closed variant of what the API may put in
// message.content: a plain string, or a list of content blocks. Both
// normalize to a single string; block texts are joined by newlines and
// blocks without a text field are skipped.
type messageContent string

type contentBlock struct {
	Text *string `json:"text"`
}

func (m *messageContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = messageContent(s)
		return nil
	}

	var blocks []contentBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return fmt.Errorf("content is neither a string nor a block list")
	}

	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Text != nil {
			parts = append(parts, *b.Text)
		}
	}
	*m = messageContent(strings.Join(parts, "\n"))
	return nil
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content messageContent `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// fortuneSchema constrains the model output to exactly the Fortune shape.
var fortuneSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"headline": map[string]any{"type": "string"},
		"fortune":  map[string]any{"type": "string"},
		"actionSteps": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": 3,
		},
		"luckyItem":   map[string]any{"type": "string"},
		"energyLevel": map[string]any{"type": "string"},
	},
	"required":             []string{"headline", "fortune", "actionSteps", "luckyItem", "energyLevel"},
	"additionalProperties": false,
}

// Tell makes exactly one chat-completions call and parses the result.
// There is no retry and no model fallback; any failure surfaces as a
// domain error for the handler to collapse into a generic response.
func (c *Client) Tell(ctx context.Context, in ports.FortuneInput) (domain.Fortune, error) {
	content, err := c.callLLM(ctx, systemPrompt, buildUserPrompt(in))
	if err != nil {
		return domain.Fortune{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}

	if content == "" {
		return domain.Fortune{}, domain.ErrEmptyCompletion
	}

	var fortune domain.Fortune
	if err := json.Unmarshal([]byte(content), &fortune); err != nil {
		c.logger.WarnContext(ctx, "unparseable model output", "model", c.model, "error", err)
		return domain.Fortune{}, fmt.Errorf("%w: %w", domain.ErrInvalidFortuneJSON, err)
	}

	return fortune, nil
}

func (c *Client) callLLM(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
		ResponseFormat: &responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchema{
				Name:   "fortune",
				Strict: true,
				Schema: fortuneSchema,
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(string(chatResp.Choices[0].Message.Content)), nil
}

const systemPrompt = `당신은 MBTI 유형별 성향을 깊이 이해하는 따뜻하고 통찰력 있는 운세 상담가입니다.
오늘 하루의 운세를 현실적이면서도 긍정적으로 풀어 주세요.
모든 응답은 반드시 한국어로만 작성합니다.
마크다운이나 코드 펜스 없이 JSON 객체 하나만 출력합니다.`

func buildUserPrompt(in ports.FortuneInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MBTI: %s\n", in.MBTI)
	fmt.Fprintf(&b, "고민: %s\n\n", in.Concern)

	b.WriteString(`다음 형식의 JSON 객체로만 답해 주세요:
{
  "headline": "<오늘의 운세 한 줄 요약>",
  "fortune": "<오늘의 운세 본문, 3~5문장>",
  "actionSteps": ["<실천 항목 1>", "<실천 항목 2>", "<실천 항목 3>"],
  "luckyItem": "<행운의 아이템>",
  "energyLevel": "<에너지 높음 | 에너지 보통 | 에너지 낮음 중 하나>"
}

actionSteps는 오늘 바로 실천할 수 있는 구체적인 행동 3가지여야 합니다.
energyLevel은 반드시 "에너지 높음", "에너지 보통", "에너지 낮음" 중 하나여야 합니다.`)

	return b.String()
}
