package app

import (
	"errors"
	"fmt"

	"github.com/shoplite/internal/cache"
	"github.com/shoplite/internal/config"
	"github.com/shoplite/internal/provider"
	"github.com/shoplite/internal/router"
	"github.com/shoplite/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, *provider.Container, error) {
	if cfg == nil {
		return nil, nil, errors.New("config is nil")
	}
	if !ValidMode(mode) {
		return nil, nil, fmt.Errorf("unknown mode %q", mode)
	}

	container := provider.NewContainer(cfg)

	var services []Service

	// 内置模拟存储独立运行，不与 API 混跑
	if mode == ModeStore {
		if err := container.InitMockStore(); err != nil {
			container.Close()
			return nil, nil, err
		}
		engine, err := router.SetupStoreRouter(cfg, container)
		if err != nil {
			container.Close()
			return nil, nil, err
		}
		addr := cfg.MockStore.Host + ":" + cfg.MockStore.Port
		services = append(services, NewHTTPService("mockstore", addr, engine))
	}

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService("http", addr, engine))
	}

	// 初始化 Worker 服务
	if mode == ModeAll || mode == ModeWorker {
		consumer := worker.NewConsumer(container)
		refreshInterval := cfg.Catalog.RefreshInterval()
		if !cache.Enabled() {
			refreshInterval = 0
		}
		workerService, err := worker.NewService(&cfg.Queue, consumer, refreshInterval)
		if err != nil {
			if mode == ModeWorker {
				container.Close()
				return nil, nil, err
			}
			// all 模式下队列未启用时只跑 API
		} else {
			services = append(services, workerService)
		}
	}

	if len(services) == 0 {
		container.Close()
		return nil, nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(mode, services...), container, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, container, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}
	defer container.Close()

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	if opts.Mode == ModeStore {
		addr = opts.Config.MockStore.Host + ":" + opts.Config.MockStore.Port
	}
	opts.Logger.Infow("app_start", "addr", addr, "mode", runner.Mode(), "services", runner.ServiceNames())
	return RunWithOptions(runner, opts)
}
