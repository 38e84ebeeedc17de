package bootstrap

import (
	"github.com/kirill778/flowchart/config"
	"github.com/kirill778/flowchart/repository"
)

type Repositories struct {
	SessionRepository repository.SessionRepository
}

func NewRepositories(cfg *config.Config, infra *Infrastructure) *Repositories {
	return &Repositories{
		SessionRepository: repository.NewSessionRepository(infra.Cache, cfg.SessionTTL),
	}
}
