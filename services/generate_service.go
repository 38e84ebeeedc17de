package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/kirill778/flowchart/config"
	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/pkg/logging"
	"github.com/kirill778/flowchart/platform/events"
)

var ErrEmptyInput = errors.New("input text is empty")

type generateResult struct {
	diagram  *models.Diagram
	fallback bool
}

// GenerateService turns a free-text process description into a diagram. The
// model is asked first; any model failure degrades to the heuristic splitter
// over the raw input, so the user always gets a diagram.
type GenerateService struct {
	cfg         *config.Config
	llm         LLMCaller
	modelConfig *ModelConfigService
	sessions    *SessionService
	publisher   events.Publisher
	prompts     *Prompts

	group singleflight.Group
}

func NewGenerateService(
	cfg *config.Config,
	llm LLMCaller,
	modelConfig *ModelConfigService,
	sessions *SessionService,
	publisher events.Publisher,
	prompts *Prompts,
) *GenerateService {
	return &GenerateService{
		cfg:         cfg,
		llm:         llm,
		modelConfig: modelConfig,
		sessions:    sessions,
		publisher:   publisher,
		prompts:     prompts,
	}
}

// Generate replaces the session's diagram with one built from text. The
// returned flag tells whether the heuristic fallback produced it. Identical
// concurrent calls for one session share a single model request.
func (s *GenerateService) Generate(ctx context.Context, sessionID, text string, direction models.Direction) (*models.Diagram, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false, ErrEmptyInput
	}
	text = s.truncate(text)

	if direction == "" {
		direction = models.DirectionVertical
	}
	if !direction.Valid() {
		return nil, false, ErrInvalidDirection
	}

	// session must exist before we spend a model call on it
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, false, err
	}

	key := sessionID + "\x00" + string(direction) + "\x00" + text
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.generate(ctx, sessionID, text, direction)
	})
	if err != nil {
		return nil, false, err
	}
	res := v.(*generateResult)
	return res.diagram, res.fallback, nil
}

func (s *GenerateService) generate(ctx context.Context, sessionID, text string, direction models.Direction) (*generateResult, error) {
	_ = s.publisher.PublishDiagramEvent(&models.DiagramEvent{
		Type:      models.EventGenerationStarted,
		SessionID: sessionID,
	})

	steps, fallback := s.extractSteps(ctx, sessionID, text)

	source := models.SourceLLM
	if fallback {
		source = models.SourceFallback
	}
	diagram := BuildDiagram(steps, direction, source)

	_, err := s.sessions.Update(ctx, sessionID, func(session *models.Session) error {
		session.Diagram = diagram
		return nil
	})
	if err != nil {
		_ = s.publisher.PublishDiagramEvent(&models.DiagramEvent{
			Type:      models.EventGenerationFailed,
			SessionID: sessionID,
			Message:   err.Error(),
		})
		return nil, fmt.Errorf("failed to store diagram: %w", err)
	}

	_ = s.publisher.PublishDiagramEvent(&models.DiagramEvent{
		Type:      models.EventGenerationCompleted,
		SessionID: sessionID,
		NodeCount: len(diagram.Nodes),
		Fallback:  fallback,
	})
	return &generateResult{diagram: diagram, fallback: fallback}, nil
}

// extractSteps asks the model and falls back to splitting the raw input
// when the call fails or the reply contains nothing usable.
func (s *GenerateService) extractSteps(ctx context.Context, sessionID, text string) ([]string, bool) {
	messages := []models.LLMMessage{
		{Role: models.RoleSystem, Content: s.prompts.Generate},
		{Role: models.RoleUser, Content: text},
	}
	override := s.modelConfig.GetOrDefault(ctx, sessionID)

	reply, err := s.llm.Chat(ctx, messages, override)
	if err != nil {
		logging.Logger.Warn("model call failed, splitting input heuristically",
			"error", err, "session", sessionID)
		return ParseSteps(text), true
	}

	steps := ParseSteps(reply)
	if len(steps) == 0 {
		logging.Logger.Warn("model reply contained no steps, splitting input heuristically",
			"session", sessionID)
		return ParseSteps(text), true
	}
	return steps, false
}

func (s *GenerateService) truncate(text string) string {
	max := s.cfg.MaxInputChars
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	logging.Logger.Warn("input truncated", "limit", max)
	return string([]rune(text)[:max])
}
