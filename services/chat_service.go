package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kirill778/flowchart/config"
	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/pkg/logging"
	"github.com/kirill778/flowchart/platform/events"
)

// ChatService drives the chat mode: the transcript is append-only and every
// assistant reply rebuilds the session's diagram.
type ChatService struct {
	cfg         *config.Config
	llm         LLMCaller
	modelConfig *ModelConfigService
	sessions    *SessionService
	publisher   events.Publisher
	prompts     *Prompts
}

func NewChatService(
	cfg *config.Config,
	llm LLMCaller,
	modelConfig *ModelConfigService,
	sessions *SessionService,
	publisher events.Publisher,
	prompts *Prompts,
) *ChatService {
	return &ChatService{
		cfg:         cfg,
		llm:         llm,
		modelConfig: modelConfig,
		sessions:    sessions,
		publisher:   publisher,
		prompts:     prompts,
	}
}

// SendMessage appends the user message, asks the model with the whole
// transcript, appends the reply and rebuilds the diagram from it. When the
// model fails, the diagram comes from splitting the user message and a
// synthesized step list keeps the transcript coherent.
func (s *ChatService) SendMessage(ctx context.Context, sessionID, message string) (*models.ChatResp, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyInput
	}
	if max := s.cfg.MaxInputChars; max > 0 && utf8.RuneCountInString(message) > max {
		logging.Logger.Warn("chat message truncated", "limit", max, "session", sessionID)
		message = string([]rune(message)[:max])
	}

	// transcript snapshot for the prompt; the lock is taken only for the
	// final append so the model call does not block other requests
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	_ = s.publisher.PublishDiagramEvent(&models.DiagramEvent{
		Type:      models.EventGenerationStarted,
		SessionID: sessionID,
	})

	messages := make([]models.LLMMessage, 0, len(session.Messages)+2)
	messages = append(messages, models.LLMMessage{Role: models.RoleSystem, Content: s.prompts.Chat})
	for _, m := range session.Messages {
		messages = append(messages, models.LLMMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, models.LLMMessage{Role: models.RoleUser, Content: message})

	override := s.modelConfig.GetOrDefault(ctx, sessionID)
	reply, err := s.llm.Chat(ctx, messages, override)

	var steps []string
	fallback := false
	switch {
	case err != nil:
		logging.Logger.Warn("model call failed, splitting message heuristically",
			"error", err, "session", sessionID)
		steps = ParseSteps(message)
		fallback = true
		reply = synthesizeStepsReply(steps)
	default:
		steps = ParseSteps(reply)
		if len(steps) == 0 {
			steps = ParseSteps(message)
			fallback = true
		}
	}

	direction := models.DirectionVertical
	if session.Diagram != nil {
		direction = session.Diagram.Direction
	}
	source := models.SourceLLM
	if fallback {
		source = models.SourceFallback
	}
	diagram := BuildDiagram(steps, direction, source)

	now := time.Now()
	_, err = s.sessions.Update(ctx, sessionID, func(session *models.Session) error {
		session.Messages = append(session.Messages,
			models.ChatMessage{Role: models.RoleUser, Content: message, CreatedAt: now},
			models.ChatMessage{Role: models.RoleAssistant, Content: reply, CreatedAt: now},
		)
		session.Diagram = diagram
		return nil
	})
	if err != nil {
		_ = s.publisher.PublishDiagramEvent(&models.DiagramEvent{
			Type:      models.EventGenerationFailed,
			SessionID: sessionID,
			Message:   err.Error(),
		})
		return nil, fmt.Errorf("failed to store chat turn: %w", err)
	}

	_ = s.publisher.PublishDiagramEvent(&models.DiagramEvent{
		Type:      models.EventGenerationCompleted,
		SessionID: sessionID,
		NodeCount: len(diagram.Nodes),
		Fallback:  fallback,
	})

	return &models.ChatResp{Answer: reply, Diagram: diagram, Fallback: fallback}, nil
}

func synthesizeStepsReply(steps []string) string {
	var b strings.Builder
	b.WriteString("Модель недоступна, шаги составлены из вашего сообщения.\n")
	for i, step := range steps {
		b.WriteString(fmt.Sprintf("Шаг %d: %s\n", i+1, step))
	}
	return strings.TrimRight(b.String(), "\n")
}
