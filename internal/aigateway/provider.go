package aigateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/saulo-duarte/odontomind-api/internal/config"
	"google.golang.org/genai"
)

// Request is one generation call. A nil Schema asks for free text.
type Request struct {
	Prompt      string
	Temperature *float32
	TopP        *float32
	TopK        *float32
	Schema      *genai.Schema
}

type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (Provider, *genai.Client, error) {
	if apiKey == "" {
		return nil, nil, ErrCredentialMissing
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao criar cliente Gemini: %w", err)
	}
	return &geminiProvider{client: client, model: model}, client, nil
}

func (p *geminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	log := config.WithContext(ctx)

	cfg := &genai.GenerateContentConfig{
		Temperature: req.Temperature,
		TopP:        req.TopP,
		TopK:        req.TopK,
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.Schema
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		log.WithError(err).Error("falha ao gerar conteúdo do Gemini")
		return "", fmt.Errorf("falha ao gerar conteúdo: %w", err)
	}

	raw := result.Text()
	log.Debugf("[AIGATEWAY] Resposta bruta do Gemini:\n%s", raw)
	if raw == "" {
		return "", errors.New("resposta vazia do modelo")
	}
	return raw, nil
}

type unavailableProvider struct{}

// NewUnavailableProvider fails every call with ErrCredentialMissing without
// touching the network.
func NewUnavailableProvider() Provider {
	return unavailableProvider{}
}

func (unavailableProvider) Generate(context.Context, Request) (string, error) {
	return "", ErrCredentialMissing
}
