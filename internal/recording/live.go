package recording

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/saulo-duarte/odontomind-api/internal/aigateway"
	"github.com/saulo-duarte/odontomind-api/internal/config"
)

// Socket is the browser side of a live session. *websocket.Conn satisfies it.
type Socket interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v interface{}) error
}

type inbound struct {
	kind int
	data []byte
}

func isStop(data []byte) bool {
	var ctrl controlMessage
	if err := json.Unmarshal(data, &ctrl); err == nil {
		return ctrl.Type == "stop"
	}
	return strings.TrimSpace(string(data)) == "stop"
}

// Live relays audio frames from sock to stream and transcription fragments
// back to sock until the browser sends stop, either side fails or ctx ends.
// The stream is closed before the transcript is summarized and saved.
func (s *recordingService) Live(ctx context.Context, userID uuid.UUID, stream aigateway.LiveStream, sock Socket) (*RecordedClass, error) {
	log := config.WithContext(ctx)

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan aigateway.TranscriptEvent)
	upstreamErr := make(chan error, 1)
	go func() {
		for {
			ev, err := stream.Receive()
			if err != nil {
				upstreamErr <- err
				return
			}
			select {
			case events <- ev:
			case <-sessionCtx.Done():
				return
			}
		}
	}()

	frames := make(chan inbound)
	socketErr := make(chan error, 1)
	go func() {
		for {
			kind, data, err := sock.ReadMessage()
			if err != nil {
				socketErr <- err
				return
			}
			select {
			case frames <- inbound{kind: kind, data: data}:
			case <-sessionCtx.Done():
				return
			}
		}
	}()

	var transcript strings.Builder
	running := true
	for running {
		select {
		case f := <-frames:
			switch f.kind {
			case websocket.BinaryMessage:
				if err := stream.SendAudio(f.data); err != nil {
					log.WithError(err).Warn("Falha ao enviar áudio para a sessão ao vivo")
					running = false
				}
			case websocket.TextMessage:
				if isStop(f.data) {
					running = false
				}
			}
		case ev := <-events:
			transcript.WriteString(ev.Text)
			if ev.TurnComplete {
				transcript.WriteString(" ")
			}
			msg := LiveMessage{Type: MessageTranscript, Text: ev.Text, Transcript: transcript.String()}
			if err := sock.WriteJSON(msg); err != nil {
				log.WithError(err).Warn("Falha ao enviar transcrição ao navegador")
				running = false
			}
		case err := <-upstreamErr:
			log.WithError(err).Warn("Sessão ao vivo encerrada pelo servidor de IA")
			running = false
		case err := <-socketErr:
			log.WithError(err).Info("Conexão com o navegador encerrada")
			running = false
		case <-ctx.Done():
			running = false
		}
	}

	cancel()
	if err := stream.Close(); err != nil {
		log.WithError(err).Warn("Erro ao fechar sessão ao vivo")
	}

	return s.Create(context.WithoutCancel(ctx), userID, transcript.String())
}
