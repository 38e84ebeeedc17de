package bootstrap

import (
	"github.com/kirill778/flowchart/config"
	"github.com/kirill778/flowchart/services"
)

type Services struct {
	SessionService     *services.SessionService
	ModelConfigService *services.ModelConfigService
	LLMService         *services.LLMService
	GenerateService    *services.GenerateService
	ChatService        *services.ChatService
	DiagramService     *services.DiagramService
	ExportService      *services.ExportService
}

func NewServices(cfg *config.Config, repos *Repositories, infra *Infrastructure) (*Services, error) {
	res := &Services{}

	prompts, err := services.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return nil, err
	}

	modelConfigService := services.NewModelConfigService(infra.Cache)
	res.ModelConfigService = modelConfigService

	sessionService := services.NewSessionService(repos.SessionRepository, infra.EventPublisher)
	res.SessionService = sessionService

	llmService := services.NewLLMService(cfg)
	res.LLMService = llmService

	res.GenerateService = services.NewGenerateService(cfg, llmService, modelConfigService, sessionService, infra.EventPublisher, prompts)
	res.ChatService = services.NewChatService(cfg, llmService, modelConfigService, sessionService, infra.EventPublisher, prompts)
	res.DiagramService = services.NewDiagramService(sessionService, infra.EventPublisher)
	res.ExportService = services.NewExportService(sessionService, infra.Storage, cfg.ShareExpiry)

	return res, nil
}
