package aigateway

import (
	"context"

	"github.com/saulo-duarte/odontomind-api/internal/config"
)

type AIGatewayContainer struct {
	Service Service
	Live    LiveTranscriber
	// Configured is false when no API key was found at startup.
	Configured bool
}

func NewAIGatewayContainer(ctx context.Context, settings config.Settings) *AIGatewayContainer {
	log := config.WithContext(ctx)

	provider, client, err := NewGeminiProvider(ctx, settings.GeminiAPIKey, settings.GeminiModel)
	if err != nil {
		log.WithError(err).Warn("Gemini indisponível, funcionalidades de IA desativadas")
		return &AIGatewayContainer{
			Service: NewService(NewUnavailableProvider()),
			Live:    NewUnavailableLiveTranscriber(),
		}
	}

	return &AIGatewayContainer{
		Service:    NewService(provider),
		Live:       NewGeminiLiveTranscriber(client, settings.GeminiLiveModel),
		Configured: true,
	}
}
