// Package gemini implements novelctx text generation services on top of
// Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/novelctx"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultTemperature keeps summaries close to the source text.
const DefaultTemperature = 0.4

// Ensure Generator implements novelctx.Generator at compile time.
var _ novelctx.Generator = (*Generator)(nil)

// Generator implements novelctx.Generator using the Gemini API.
type Generator struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithModel sets the model name.
func WithModel(model string) GeneratorOption {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) GeneratorOption {
	return func(g *Generator) {
		g.config.Temperature = &t
	}
}

// WithMaxOutputTokens caps the length of each response.
func WithMaxOutputTokens(n int32) GeneratorOption {
	return func(g *Generator) {
		g.config.MaxOutputTokens = n
	}
}

// WithSystemInstruction sets the system instruction sent with every prompt.
func WithSystemInstruction(text string) GeneratorOption {
	return func(g *Generator) {
		g.config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: text}}}
	}
}

// WithJSONResponse asks the model to answer with a JSON document.
func WithJSONResponse() GeneratorOption {
	return func(g *Generator) {
		g.config.ResponseMIMEType = "application/json"
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client, opts ...GeneratorOption) *Generator {
	g := &Generator{
		client: client,
		model:  DefaultModel,
		config: BuildConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}

// Config returns the request configuration.
func (g *Generator) Config() *genai.GenerateContentConfig {
	return g.config
}

// Generate sends prompt to the model and returns the response text.
// Blocked prompts and empty responses are reported as EINTERNAL.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", novelctx.Errorf(novelctx.EINVALID, "prompt required")
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		g.config,
	)
	if err != nil {
		return "", novelctx.WrapErrorf(err, novelctx.EINTERNAL, "gemini request failed")
	}
	return responseText(result)
}

// responseText extracts the text of a response or explains why there is none.
func responseText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil {
		return "", novelctx.Errorf(novelctx.EINTERNAL, "gemini returned nil result")
	}
	if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", novelctx.Errorf(novelctx.EINTERNAL, "gemini blocked the prompt: %s", fb.BlockReason)
	}
	if len(result.Candidates) == 0 {
		return "", novelctx.Errorf(novelctx.EINTERNAL, "gemini returned no candidates")
	}
	text := result.Text()
	if text == "" {
		return "", novelctx.Errorf(novelctx.EINTERNAL, "gemini returned an empty response (finish reason %s)",
			result.Candidates[0].FinishReason)
	}
	return text, nil
}

// BuildConfig returns the default GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(DefaultTemperature)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an assistant that reads Japanese web novels. Base every answer only on the episode text provided.",
			}},
		},
		Temperature: &temp,
	}
}
