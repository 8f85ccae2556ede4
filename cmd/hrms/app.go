package main

import (
	"fmt"
	"io"

	"github.com/jrsteele09/go-hrms-client/auth"
	"github.com/jrsteele09/go-hrms-client/employees"
	"github.com/jrsteele09/go-hrms-client/gateway"
	"github.com/jrsteele09/go-hrms-client/internal/config"
	"github.com/jrsteele09/go-hrms-client/internal/logging"
	"github.com/jrsteele09/go-hrms-client/session"
	"github.com/jrsteele09/go-hrms-client/shifts"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// app is everything a command needs, built once per invocation.
type app struct {
	cfg       config.Config
	store     *session.Store
	navigator *auth.ConsoleNavigator
	gateway   *gateway.Gateway
	registry  *prometheus.Registry
	logCloser io.Closer

	auth      *auth.Service
	employees *employees.Service
	shifts    *shifts.Service
}

// navigationHints tells the user which command reaches each entry point.
var navigationHints = map[string]string{
	"/":         "hrms login",
	"/employee": "hrms dashboard",
	"/manager":  "hrms dashboard",
}

func newApp(cfg config.Config, errOut io.Writer, verbose bool) (*app, error) {
	_, closer := logging.New(cfg, errOut)
	if verbose {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	}

	repo, err := newSessionRepo(cfg)
	if err != nil {
		closer.Close()
		return nil, err
	}
	store, err := session.New(repo)
	if err != nil {
		closer.Close()
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		store:     store,
		navigator: auth.NewConsoleNavigator(errOut, navigationHints),
		registry:  prometheus.NewRegistry(),
		logCloser: closer,
	}
	controller := auth.NewController(store, a.navigator, auth.NewConsoleNotifier(errOut), cfg.GetLoginPath())

	metrics, err := gateway.NewMetrics(a.registry)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("[hrms newApp] %w", err)
	}
	a.gateway, err = gateway.New(cfg, store,
		gateway.WithMetrics(metrics),
		gateway.WithResponseSteps(controller.Step()),
	)
	if err != nil {
		closer.Close()
		return nil, err
	}

	a.auth = auth.NewService(a.gateway.Auth, store, controller)
	a.employees = employees.NewService(a.gateway.API, store)
	a.shifts = shifts.NewService(a.gateway.API)
	return a, nil
}

func newSessionRepo(cfg config.SessionConfig) (session.Repo, error) {
	switch cfg.GetSessionBackend() {
	case config.SessionBackendMemory:
		return session.NewInMemoryRepo(), nil
	case config.SessionBackendFile:
		return session.NewFileRepo(cfg.GetSessionFile()), nil
	}
	return nil, fmt.Errorf("[hrms newSessionRepo] unknown session backend %q", cfg.GetSessionBackend())
}

// logMetrics writes the request counters gathered during this invocation at debug level.
func (a *app) logMetrics() {
	families, err := a.registry.Gather()
	if err != nil {
		log.Err(err).Msg("failed to gather metrics")
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			evt := log.Debug().Str("metric", mf.GetName())
			for _, lp := range m.GetLabel() {
				evt = evt.Str(lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				evt = evt.Float64("value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				evt = evt.Uint64("count", m.GetHistogram().GetSampleCount()).
					Float64("sum_seconds", m.GetHistogram().GetSampleSum())
			}
			evt.Msg("gateway metrics")
		}
	}
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}
