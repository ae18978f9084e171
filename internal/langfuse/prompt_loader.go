package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// PromptLoaderConfig describes how to load the narrative system prompt from
// Langfuse prompt management, with a local file as cache and fallback.
type PromptLoaderConfig struct {
	BaseURL   string
	PublicKey string
	SecretKey string

	PromptName  string
	PromptLabel string
	// SavePath caches the last fetched prompt and is read when Langfuse is unreachable
	SavePath string

	Logger *zerolog.Logger
}

var errNoPromptSource = errors.New("no prompt source configured")

// LoadPrompt fetches the named prompt from Langfuse and caches it at SavePath.
// When the fetch is impossible or fails, the cached file is returned instead.
func LoadPrompt(ctx context.Context, cfg PromptLoaderConfig) (string, error) {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("component", "langfuse").Logger()
	}

	if cfg.PromptName != "" {
		prompt, version, err := fetchPrompt(ctx, cfg)
		switch {
		case err == nil:
			log.Info().Str("prompt", cfg.PromptName).Str("label", cfg.PromptLabel).Int("version", version).Msg("loaded prompt from langfuse")
			if err := cachePrompt(cfg.SavePath, prompt); err != nil {
				log.Warn().Err(err).Str("path", cfg.SavePath).Msg("failed to cache prompt locally")
			}
			return prompt, nil
		case errors.Is(err, errNoPromptSource):
		default:
			log.Warn().Err(err).Str("prompt", cfg.PromptName).Msg("langfuse prompt fetch failed, trying local copy")
		}
	}

	if cfg.SavePath == "" {
		return "", errNoPromptSource
	}
	data, err := os.ReadFile(cfg.SavePath)
	if err != nil {
		return "", fmt.Errorf("read local prompt file: %w", err)
	}
	return string(data), nil
}

type promptResponse struct {
	Type    string          `json:"type"`
	Version int             `json:"version"`
	Prompt  json.RawMessage `json:"prompt"`
}

type chatMessage struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name"`
}

func fetchPrompt(ctx context.Context, cfg PromptLoaderConfig) (string, int, error) {
	transport, err := newAPI(cfg.BaseURL, cfg.PublicKey, cfg.SecretKey, 10*time.Second)
	if err != nil {
		return "", 0, err
	}
	if transport == nil {
		return "", 0, errNoPromptSource
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := url.Values{}
	if cfg.PromptLabel != "" {
		query.Set("label", cfg.PromptLabel)
	}

	var resp promptResponse
	if err := transport.do(ctx, http.MethodGet, "/api/public/v2/prompts/"+url.PathEscape(cfg.PromptName), query, nil, &resp); err != nil {
		return "", 0, err
	}

	switch resp.Type {
	case "", "text":
		var text string
		if err := json.Unmarshal(resp.Prompt, &text); err != nil {
			return "", 0, fmt.Errorf("parse text prompt: %w", err)
		}
		return text, resp.Version, nil
	case "chat":
		var messages []chatMessage
		if err := json.Unmarshal(resp.Prompt, &messages); err != nil {
			return "", 0, fmt.Errorf("parse chat prompt: %w", err)
		}
		return flattenChat(messages), resp.Version, nil
	default:
		return "", 0, fmt.Errorf("unsupported prompt type %q", resp.Type)
	}
}

// flattenChat renders chat messages as "ROLE: content" blocks. Placeholders
// become {{name}} so they survive as template variables.
func flattenChat(messages []chatMessage) string {
	blocks := make([]string, 0, len(messages))
	for _, m := range messages {
		content := m.Content
		if m.Type == "placeholder" {
			if m.Name == "" {
				continue
			}
			content = "{{" + m.Name + "}}"
		}
		if content == "" {
			continue
		}
		role := strings.ToUpper(m.Role)
		if role == "" {
			role = "MESSAGE"
		}
		blocks = append(blocks, role+": "+content)
	}
	return strings.Join(blocks, "\n\n")
}

func cachePrompt(path, prompt string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(prompt), 0o600)
}
