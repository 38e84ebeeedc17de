package bootstrap

import "github.com/kirill778/flowchart/handlers"

type Handlers struct {
	SessionHandler  *handlers.SessionHandler
	GenerateHandler *handlers.GenerateHandler
	ChatHandler     *handlers.ChatHandler
	DiagramHandler  *handlers.DiagramHandler
	ExportHandler   *handlers.ExportHandler
	WSHandler       *handlers.WSHandler
}

func NewHandlers(services *Services, infra *Infrastructure) *Handlers {
	res := &Handlers{}
	res.SessionHandler = handlers.NewSessionHandler(services.SessionService, services.ModelConfigService)
	res.GenerateHandler = handlers.NewGenerateHandler(services.GenerateService)
	res.ChatHandler = handlers.NewChatHandler(services.ChatService)
	res.DiagramHandler = handlers.NewDiagramHandler(services.DiagramService)
	res.ExportHandler = handlers.NewExportHandler(services.ExportService)
	res.WSHandler = handlers.NewWSHandler(infra.EventPublisher)
	return res
}
