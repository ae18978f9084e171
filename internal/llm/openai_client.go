package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

// DefaultSystemPrompt is used when no prompt is loaded from Langfuse or disk.
const DefaultSystemPrompt = `You are a non-medical health journaling assistant.

You receive insights that were already computed from a user's daily journal: food and digestive symptom correlations, symptom frequencies, a menstrual cycle forecast and a daily health score. You must base your conclusions only on the provided data.

Your goals:
- Summarize what the computed insights say in clear, neutral language.
- Point out the strongest patterns (foods that co-occur with digestive symptoms, symptom changes around the period, calorie trends).
- Suggest practical journaling and routine experiments the user could try.

Rules:
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, medication or treatment.
- Do NOT invent numbers that are not in the data.
- If there are no insights or data is limited, say that explicitly.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences summarizing the window.",
  "observations": ["2-5 items, each grounded in one of the provided insights or numbers."],
  "guidance": ["2-4 concrete, non-medical suggestions tailored to these patterns."]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing this user's computed health journal insights.

- "insights" are statements that passed significance thresholds.
- "food_digestive_correlation" lists the share of days with each food that also had a digestive symptom.
- "symptoms_data" lists the most frequent symptoms.
- "cycle_prediction" is the next period and ovulation forecast, when available.
- "latest_health_score" is a 0-1 composite of sleep, symptoms, activity and hydration.

JSON:

%s

Based on this data, respond in the required JSON format.`

// NarrativeLLM writes a natural-language narrative over computed insights.
type NarrativeLLM interface {
	GenerateNarrative(ctx context.Context, narrativeCtx *domain.NarrativeContext) (*domain.NarrativeOutput, error)
}

// OpenAIClient implements NarrativeLLM using the OpenAI API.
type OpenAIClient struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// NewOpenAIClient creates a new OpenAI client for generating narratives.
// Returns nil if apiKey is empty. An empty systemPrompt uses DefaultSystemPrompt.
func NewOpenAIClient(apiKey, model, systemPrompt string, opts ...option.RequestOption) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}

	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)

	return &OpenAIClient{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
	}
}

// GenerateNarrative calls OpenAI to summarize the computed insights.
func (c *OpenAIClient) GenerateNarrative(ctx context.Context, narrativeCtx *domain.NarrativeContext) (*domain.NarrativeOutput, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	contextJSON, err := json.MarshalIndent(narrativeCtx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(fmt.Sprintf(userPromptTemplate, string(contextJSON))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	return parseNarrative(resp.Choices[0].Message.Content)
}

// parseNarrative decodes the model output, tolerating a fenced code block.
func parseNarrative(content string) (*domain.NarrativeOutput, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	var output domain.NarrativeOutput
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}
	if output.Summary == "" {
		return nil, fmt.Errorf("%w: empty summary", ErrOpenAIResponse)
	}
	if output.Observations == nil {
		output.Observations = []string{}
	}
	if output.Guidance == nil {
		output.Guidance = []string{}
	}
	return &output, nil
}
