package aigateway

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// AudioMIMEType is the format the live model expects: 16-bit PCM, mono, 16 kHz.
const AudioMIMEType = "audio/pcm;rate=16000"

type TranscriptEvent struct {
	Text         string `json:"text"`
	TurnComplete bool   `json:"turnComplete"`
}

// LiveStream is one open live transcription session.
type LiveStream interface {
	SendAudio(pcm []byte) error
	Receive() (TranscriptEvent, error)
	Close() error
}

type LiveTranscriber interface {
	Open(ctx context.Context) (LiveStream, error)
}

type geminiLive struct {
	client *genai.Client
	model  string
}

func NewGeminiLiveTranscriber(client *genai.Client, model string) LiveTranscriber {
	return &geminiLive{client: client, model: model}
}

func (g *geminiLive) Open(ctx context.Context) (LiveStream, error) {
	session, err := g.client.Live.Connect(ctx, g.model, &genai.LiveConnectConfig{
		ResponseModalities:      []genai.Modality{genai.ModalityAudio},
		InputAudioTranscription: &genai.AudioTranscriptionConfig{},
	})
	if err != nil {
		return nil, wrap("live_connect", fmt.Errorf("falha ao abrir sessão ao vivo: %w", err))
	}
	return &geminiLiveStream{session: session}, nil
}

type geminiLiveStream struct {
	session   *genai.Session
	closeOnce sync.Once
	closeErr  error
}

func (s *geminiLiveStream) SendAudio(pcm []byte) error {
	return s.session.SendRealtimeInput(genai.LiveRealtimeInput{
		Audio: &genai.Blob{Data: pcm, MIMEType: AudioMIMEType},
	})
}

// Receive blocks until the next transcription fragment. Server messages that
// carry no input transcription are skipped.
func (s *geminiLiveStream) Receive() (TranscriptEvent, error) {
	for {
		msg, err := s.session.Receive()
		if err != nil {
			return TranscriptEvent{}, err
		}
		if msg.ServerContent == nil {
			continue
		}
		ev := TranscriptEvent{TurnComplete: msg.ServerContent.TurnComplete}
		if msg.ServerContent.InputTranscription != nil {
			ev.Text = msg.ServerContent.InputTranscription.Text
		}
		if ev.Text == "" && !ev.TurnComplete {
			continue
		}
		return ev, nil
	}
}

func (s *geminiLiveStream) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.session.Close()
	})
	return s.closeErr
}

type unavailableLive struct{}

func NewUnavailableLiveTranscriber() LiveTranscriber {
	return unavailableLive{}
}

func (unavailableLive) Open(context.Context) (LiveStream, error) {
	return nil, &Error{Op: "live_connect", Kind: KindCredentialMissing, Err: ErrCredentialMissing}
}
