package bootstrap

import (
	"github.com/kirill778/flowchart/config"
	"github.com/kirill778/flowchart/pkg/logging"
)

type App struct {
	Cfg            *config.Config
	Infrastructure *Infrastructure
	Repositories   *Repositories
	Services       *Services
	Handlers       *Handlers
}

func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Cfg: cfg}
	infra, err := NewInfrastructure(cfg)
	if err != nil {
		logging.Logger.Error("fail NewInfrastructure", "error", err)
		return nil, err
	}
	app.Infrastructure = infra

	// repos
	repos := NewRepositories(cfg, infra)
	app.Repositories = repos

	// services
	services, err := NewServices(cfg, repos, infra)
	if err != nil {
		logging.Logger.Error("fail NewServices", "error", err)
		return nil, err
	}
	app.Services = services

	handlers := NewHandlers(services, infra)
	app.Handlers = handlers

	return app, nil
}

// Shutdown infra
func (a *App) Shutdown() error {
	if a == nil {
		return nil
	}
	if a.Infrastructure != nil {
		if err := a.Infrastructure.Shutdown(); err != nil {
			return err
		}
	}
	return nil
}
