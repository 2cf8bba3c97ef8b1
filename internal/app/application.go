package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Rorical/cadcopilot/internal/client"
	"github.com/Rorical/cadcopilot/internal/config"
	"github.com/Rorical/cadcopilot/internal/core"
	"github.com/Rorical/cadcopilot/internal/dispatcher"
	"github.com/Rorical/cadcopilot/internal/eventbus"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	logger     *zap.Logger
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.RecommendService
	model      *AppModel
}

func NewApplication(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	deployment := cfg.Deployment()
	recommender, err := client.New(deployment, client.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", cfg.ActiveProfile, err)
	}

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		logger.Warn("event bus error",
			zap.String("operation", e.Operation),
			zap.Error(e.Err),
			zap.Stringer("circuit", eb.GetCircuitBreakerState()))
	})

	disp := dispatcher.NewEventDispatcher(eb)
	service := core.NewRecommendService(recommender, eb, logger)

	logger.Info("application created",
		zap.String("profile", cfg.ActiveProfile),
		zap.String("service_base_url", deployment.ServiceBaseURL))

	return &Application{
		config:     cfg,
		logger:     logger,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      NewAppModel(disp, cfg.ActiveProfile),
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

// Stop cancels the request in flight and releases the bus.
func (app *Application) Stop() {
	app.dispatcher.Stop()
	app.service.Stop()
	app.eventBus.Close()
	_ = app.logger.Sync()
}
