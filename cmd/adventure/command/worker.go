package command

import (
	"fmt"

	"github.com/pixil98/go-adventure/internal/api"
	"github.com/pixil98/go-adventure/internal/driver"
	"github.com/pixil98/go-adventure/internal/listener"
	"github.com/pixil98/go-adventure/internal/mcptools"
	"github.com/pixil98/go-adventure/internal/messaging"
	"github.com/pixil98/go-adventure/internal/player"
	"github.com/pixil98/go-adventure/internal/session"
	"github.com/pixil98/go-adventure/internal/storage"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	workers := service.WorkerList{}

	var source session.GraphSource = storage.NewFileMap(cfg.MapPath)
	if cfg.CacheMap {
		source = storage.NewCachedMap(cfg.MapPath)
	}
	// Fail at startup rather than on the first session.
	if _, err := source.Graph(); err != nil {
		return nil, fmt.Errorf("checking map: %w", err)
	}

	store, err := cfg.Leaderboard.BuildStore()
	if err != nil {
		return nil, fmt.Errorf("creating leaderboard: %w", err)
	}
	workers["leaderboard"] = &storeCloser{store: store}

	regOpts := []session.RegistryOpt{}
	if cfg.Prompt != "" {
		regOpts = append(regOpts, session.WithPrompt(cfg.Prompt))
	}

	var natsServer *messaging.NatsServer
	if cfg.Nats.Enabled {
		natsServer, err = cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = natsServer
		regOpts = append(regOpts, session.WithEventPublisher(messaging.NewJSONPublisher(natsServer)))
	}

	registry := session.NewRegistry(source, store, regOpts...)

	var driverOpts []driver.DriverOpt
	if d := cfg.tickInterval(); d > 0 {
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	workers["driver"] = driver.NewDriver([]driver.Manager{registry}, driverOpts...)

	cm := listener.NewConnectionManager(player.NewPlayerManager(registry))
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = w
	}
	if len(listeners) > 0 {
		workers["listeners"] = &listeners
	}

	if cfg.Http.enabled() {
		opts := cfg.Http.serverOpts()
		if cfg.Http.EnableMCP {
			opts = append(opts, api.WithMCP(mcptools.NewTools(registry)))
		}
		if natsServer != nil {
			opts = append(opts, api.WithEventSubscriber(natsServer))
		}
		workers["http"] = api.NewServer(registry, opts...)
	}

	return workers, nil
}
