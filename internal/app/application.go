package app

import (
	"context"
	"fmt"

	"github.com/lycosidae/orchestrator/internal/adapter/httpserver"
	"github.com/lycosidae/orchestrator/internal/config"
	"github.com/lycosidae/orchestrator/internal/infra/callback"
	"github.com/lycosidae/orchestrator/internal/infra/docker"
	"github.com/lycosidae/orchestrator/internal/infra/expiry"
	"github.com/lycosidae/orchestrator/internal/infra/logger"
	"github.com/lycosidae/orchestrator/internal/infra/network"
	"github.com/lycosidae/orchestrator/internal/usecase/lifecycle"
)

// Application wires the orchestrator components together.
type Application struct {
	cfg    *config.Config
	logger *logger.Logger
	server *httpserver.Server
}

func NewApplication(cfg *config.Config) *Application {
	log := logger.New(cfg.LogDir)

	publicIP := cfg.PublicIP
	if publicIP == "" {
		publicIP = network.PublicIP()
		log.Info("PUBLIC_IP not set, discovered %s", publicIP)
	}

	runtime := docker.NewRuntime(cfg.DockerBinary, cfg.PullTimeout, cfg.CommandTimeout, log)
	allocator := network.NewAllocator(cfg.PortRangeStart, cfg.PortRangeEnd)
	scheduler := expiry.NewScheduler(log)
	notifier := callback.NewNotifier(log)

	controller := lifecycle.NewService(runtime, allocator, scheduler, notifier, log, publicIP)

	api := httpserver.NewAPI(controller, log)
	server := httpserver.NewServer(cfg.Port, api, cfg.Secret, log)

	return &Application{cfg: cfg, logger: log, server: server}
}

func (a *Application) Run() error {
	a.logger.Info("orchestrator listening on %s", fmt.Sprintf("0.0.0.0:%d", a.cfg.Port))
	return a.server.Run()
}

func (a *Application) Shutdown(ctx context.Context) error {
	a.logger.Info("orchestrator shutting down")
	return a.server.Shutdown(ctx)
}
