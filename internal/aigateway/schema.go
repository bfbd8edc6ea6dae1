package aigateway

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"google.golang.org/genai"
)

var questionsSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question": {Type: genai.TypeString},
			"options": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"correctAnswer": {Type: genai.TypeString},
		},
		Required: []string{"question", "options", "correctAnswer"},
	},
}

var chatSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"answer": {Type: genai.TypeString},
		"sources": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id":    {Type: genai.TypeInteger},
					"quote": {Type: genai.TypeString},
				},
				Required: []string{"id", "quote"},
			},
		},
	},
	Required: []string{"answer", "sources"},
}

type rawQuestion struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"len=4,unique,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
}

type rawQuestions struct {
	Items []rawQuestion `validate:"len=5,dive"`
}

type rawSource struct {
	ID    int    `json:"id" validate:"gte=1"`
	Quote string `json:"quote" validate:"required"`
}

type rawChat struct {
	Answer  string      `json:"answer" validate:"required"`
	Sources []rawSource `json:"sources" validate:"dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// cleanJSON strips the markdown fences models sometimes wrap around JSON.
func cleanJSON(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "`")
	return strings.TrimSpace(clean)
}

func parseQuestions(op, raw string) ([]rawQuestion, error) {
	var items []rawQuestion
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &items); err != nil {
		return nil, schemaError(op, "falha ao decodificar JSON: %w", err)
	}
	if err := validate.Struct(rawQuestions{Items: items}); err != nil {
		return nil, schemaError(op, "questões inválidas: %w", err)
	}

	for i, q := range items {
		found := false
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return nil, schemaError(op, "questão %d tem opção vazia", i+1)
			}
			if opt == q.CorrectAnswer {
				found = true
			}
		}
		if !found {
			return nil, schemaError(op, "questão %d: resposta correta não está entre as opções", i+1)
		}
	}
	return items, nil
}

func parseChat(op, raw string, docCount int) (rawChat, error) {
	var reply rawChat
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &reply); err != nil {
		return rawChat{}, schemaError(op, "falha ao decodificar JSON: %w", err)
	}
	if err := validate.Struct(reply); err != nil {
		return rawChat{}, schemaError(op, "resposta inválida: %w", err)
	}
	for _, s := range reply.Sources {
		if s.ID > docCount {
			return rawChat{}, schemaError(op, "fonte %d fora do intervalo 1..%d", s.ID, docCount)
		}
	}
	return reply, nil
}
