package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

// Service 服务接口（http / mockstore / worker）
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 按启动模式组合的服务运行器
type Runner struct {
	mode     string
	services []Service
}

// NewRunner 创建服务运行器
func NewRunner(mode string, services ...Service) *Runner {
	return &Runner{mode: mode, services: services}
}

// Mode 启动模式
func (r *Runner) Mode() string {
	if r == nil {
		return ""
	}
	return r.mode
}

// ServiceNames 已组装的服务名称，按启动顺序
func (r *Runner) ServiceNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.services))
	for _, svc := range r.services {
		if svc == nil {
			names = append(names, "unknown")
			continue
		}
		names = append(names, svc.Name())
	}
	return names
}

// RunWithOptions 运行服务并处理系统信号
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 启动全部服务，任一退出或 ctx 取消后按逆序停止
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, logger *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	if err := r.validate(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(r.services))
	for _, svc := range r.services {
		service := svc
		go func() {
			name := service.Name()
			if logger != nil {
				logger.Infow("service_start", "service", name, "mode", r.mode)
			}
			err := service.Start(ctx)
			if logger != nil {
				logger.Infow("service_exit", "service", name, "mode", r.mode, "error", err)
			}
			errCh <- err
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ctx.Err()
	case err := <-errCh:
		runErr = err
	}

	cancel()
	if stopTimeout <= 0 {
		stopTimeout = 10 * time.Second
	}
	stopErr := r.stopAll(stopTimeout, logger)
	if runErr == nil || errors.Is(runErr, context.Canceled) {
		return stopErr
	}
	return runErr
}

// stopAll 按启动的逆序停止，每个服务各自拥有 stopTimeout
func (r *Runner) stopAll(stopTimeout time.Duration, logger *zap.SugaredLogger) error {
	var errs []error
	for i := len(r.services) - 1; i >= 0; i-- {
		svc := r.services[i]
		stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
		started := time.Now()
		err := svc.Stop(stopCtx)
		stopCancel()
		if err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", svc.Name(), err))
			if logger != nil {
				logger.Errorw("service_stop_failed", "service", svc.Name(), "mode", r.mode, "error", err)
			}
			continue
		}
		if logger != nil {
			logger.Infow("service_stopped", "service", svc.Name(), "mode", r.mode, "elapsed", time.Since(started))
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) validate() error {
	seen := make(map[string]struct{}, len(r.services))
	for _, svc := range r.services {
		if svc == nil {
			return errors.New("service is nil")
		}
		name := svc.Name()
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate service %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
