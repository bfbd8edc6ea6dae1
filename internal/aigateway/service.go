package aigateway

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/config"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

type Service interface {
	Summarize(ctx context.Context, text string) (string, error)
	GenerateQuestions(ctx context.Context, text string) ([]Question, error)
	Chat(ctx context.Context, question string, docs []ContextDocument) (*ChatReply, error)
	AnalyzeDocument(ctx context.Context, text string) (*Analysis, error)
}

type service struct {
	provider Provider
	newID    func() string
}

func NewService(provider Provider) Service {
	return &service{provider: provider, newID: uuid.NewString}
}

func (s *service) Summarize(ctx context.Context, text string) (string, error) {
	const op = "summarize"
	log := config.WithContext(ctx)

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}

	raw, err := s.provider.Generate(ctx, Request{
		Prompt:      BuildSummaryPrompt(text),
		Temperature: genai.Ptr[float32](0.5),
		TopP:        genai.Ptr[float32](0.95),
		TopK:        genai.Ptr[float32](64),
	})
	if err != nil {
		log.WithError(err).Error("Error generating summary")
		return "", wrap(op, err)
	}

	summary := strings.TrimSpace(raw)
	if summary == "" {
		return "", schemaError(op, "resumo vazio")
	}
	return summary, nil
}

func (s *service) GenerateQuestions(ctx context.Context, text string) ([]Question, error) {
	const op = "generate_questions"
	log := config.WithContext(ctx)

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	raw, err := s.provider.Generate(ctx, Request{
		Prompt: BuildQuestionsPrompt(text),
		Schema: questionsSchema,
	})
	if err != nil {
		log.WithError(err).Error("Error generating questions")
		return nil, wrap(op, err)
	}

	items, err := parseQuestions(op, raw)
	if err != nil {
		log.WithError(err).Errorf("[AIGATEWAY] Questões rejeitadas. Conteúdo:\n%s", raw)
		return nil, err
	}

	questions := make([]Question, len(items))
	for i, it := range items {
		questions[i] = Question{
			ID:            s.newID(),
			Question:      it.Question,
			Options:       it.Options,
			CorrectAnswer: it.CorrectAnswer,
			Type:          QuestionTypeMultipleChoice,
		}
	}

	log.Infof("[AIGATEWAY] Geradas %d perguntas com sucesso", len(questions))
	return questions, nil
}

func (s *service) Chat(ctx context.Context, question string, docs []ContextDocument) (*ChatReply, error) {
	const op = "chat"
	log := config.WithContext(ctx)

	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyInput
	}

	raw, err := s.provider.Generate(ctx, Request{
		Prompt:      BuildChatPrompt(question, docs),
		Temperature: genai.Ptr[float32](0.3),
		TopP:        genai.Ptr[float32](0.95),
		TopK:        genai.Ptr[float32](64),
		Schema:      chatSchema,
	})
	if err != nil {
		log.WithError(err).Error("Error generating chat response")
		return nil, wrap(op, err)
	}

	parsed, err := parseChat(op, raw, len(docs))
	if err != nil {
		log.WithError(err).Errorf("[AIGATEWAY] Resposta do chat rejeitada. Conteúdo:\n%s", raw)
		return nil, err
	}

	reply := &ChatReply{Answer: parsed.Answer, Sources: make([]Source, 0, len(parsed.Sources))}
	for _, src := range parsed.Sources {
		doc := docs[src.ID-1]
		reply.Sources = append(reply.Sources, Source{
			ID:           src.ID,
			Quote:        src.Quote,
			DocumentID:   doc.ID,
			DocumentName: doc.Name,
		})
	}
	return reply, nil
}

// AnalyzeDocument issues the summary and question requests concurrently and
// fails if either one fails.
func (s *service) AnalyzeDocument(ctx context.Context, text string) (*Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	var analysis Analysis
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.Summarize(gctx, text)
		analysis.Summary = summary
		return err
	})
	g.Go(func() error {
		questions, err := s.GenerateQuestions(gctx, text)
		analysis.Questions = questions
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &analysis, nil
}
