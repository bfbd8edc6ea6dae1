package recording

type CreateRecordingRequest struct {
	Transcription string `json:"transcription"`
}

const (
	MessageTranscript = "transcript"
	MessageSaved      = "saved"
	MessageError      = "error"
)

// LiveMessage is what the API pushes to the browser during a live session.
type LiveMessage struct {
	Type       string         `json:"type"`
	Text       string         `json:"text,omitempty"`
	Transcript string         `json:"transcript,omitempty"`
	Recording  *RecordedClass `json:"recording,omitempty"`
	Error      string         `json:"error,omitempty"`
}

type controlMessage struct {
	Type string `json:"type"`
}
