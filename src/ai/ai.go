// Package ai asks a Gemini vision model which on-screen option answers the
// captured question. The response contract is the JSON object
// {"Correct option": ["<option text>", ...]}.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"
)

const sysInstruction = `Which option is/are the correct answer to the question?
Choose from the options provided.
Respond with only the text of the correct option, and output only the correct option.
Do not include any additional text or explanation.
Answer as a JSON object: {"Correct option": ["<option text>"]} or
{"Correct option": ["<option text1>","<option text2>"]} when several options are correct.`

// Config holds the model settings.
type Config struct {
	APIKey string
	// Model defaults to gemini-2.5-flash.
	Model string
	// Temperature defaults to 0.75.
	Temperature float32
	// EnableSearch attaches the Google Search tool. The structured response
	// schema cannot be combined with tools, so search responses are parsed
	// from free-form JSON text.
	EnableSearch bool
	// Retries is the number of extra attempts for transient transport
	// failures.
	Retries int
}

// Answer is the model's choice of correct option texts.
type Answer struct {
	CorrectOptions []string
}

// Client wraps the Gemini API client.
type Client struct {
	cfg Config
	gc  *genai.Client
}

// New validates the config and creates the API client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.75
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{cfg: cfg, gc: gc}, nil
}

// AnswerQuestion sends the screenshot (and an optional extra prompt) to the
// model and returns the parsed answer. Transient transport errors are
// retried a counted number of times with a linear delay.
func (c *Client) AnswerQuestion(ctx context.Context, imagePath, prompt string) (Answer, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return Answer{}, fmt.Errorf("read screenshot %s: %w", imagePath, err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * time.Second)
			log.Printf("AI: retrying (attempt %d/%d) after: %v", attempt, c.cfg.Retries, lastErr)
		}
		text, err := c.generate(ctx, imageData, prompt)
		if err != nil {
			lastErr = err
			if isTransient(err) && attempt < c.cfg.Retries {
				continue
			}
			return Answer{}, err
		}
		return parseAnswer(text)
	}
	return Answer{}, lastErr
}

func (c *Client) generate(ctx context.Context, imageData []byte, prompt string) (string, error) {
	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: "image/png", Data: imageData}},
	}
	if prompt != "" {
		parts = append(parts, &genai.Part{Text: prompt})
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.cfg.Temperature),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: sysInstruction}},
		},
		SafetySettings: blockNothing(),
	}
	if c.cfg.EnableSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	} else {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = answerSchema()
	}

	resp, err := c.gc.Models.GenerateContent(ctx, c.cfg.Model,
		[]*genai.Content{{Role: "user", Parts: parts}}, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty gemini response")
	}
	return text, nil
}

func answerSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"Correct option"},
		Properties: map[string]*genai.Schema{
			"Correct option": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
	}
}

func blockNothing() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, len(categories))
	for i, cat := range categories {
		settings[i] = &genai.SafetySetting{
			Category:  cat,
			Threshold: genai.HarmBlockThresholdBlockNone,
		}
	}
	return settings
}

func isTransient(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "503")
}

// parseAnswer decodes the model response. It tolerates markdown code fences
// and the historical quirk where the option list itself arrives as a
// Python-style quoted string.
func parseAnswer(text string) (Answer, error) {
	cleaned := stripFences(text)

	var obj struct {
		CorrectOption json.RawMessage `json:"Correct option"`
	}
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return Answer{}, fmt.Errorf("parse answer JSON: %w\nraw response: %s", err, text)
	}
	if len(obj.CorrectOption) == 0 {
		return Answer{}, fmt.Errorf("answer missing \"Correct option\": %s", text)
	}

	var options []string
	if err := json.Unmarshal(obj.CorrectOption, &options); err == nil {
		return Answer{CorrectOptions: options}, nil
	}

	var single string
	if err := json.Unmarshal(obj.CorrectOption, &single); err == nil {
		return Answer{CorrectOptions: parseQuotedList(single)}, nil
	}

	return Answer{}, fmt.Errorf("unrecognized \"Correct option\" value: %s", obj.CorrectOption)
}

func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// parseQuotedList handles "['a', 'b']" and plain single answers.
func parseQuotedList(s string) []string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") {
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}
	trimmed = strings.Trim(trimmed, "[]")
	parts := strings.Split(trimmed, ",")
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		opt := strings.Trim(strings.TrimSpace(p), `'"`)
		if opt != "" {
			options = append(options, opt)
		}
	}
	return options
}
