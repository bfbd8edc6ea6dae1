package quiz

type StartRequest struct {
	Topic string `json:"topic"`
}

type AnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

type AnswerResponse struct {
	Correct bool `json:"correct"`
	View
}

type AdvanceResponse struct {
	View
	Attempt *Attempt `json:"attempt,omitempty"`
}
