package service

import (
	"sync/atomic"

	"github.com/lightningnetwork/lnd/signal"
	"go.uber.org/zap"

	"github.com/babylonchain/staking-ledger/config"
)

// LedgerServer is the main daemon construct for the staking ledger.
type LedgerServer struct {
	started int32

	cfg *config.Config
	app *LedgerApp

	logger *zap.Logger

	interceptor signal.Interceptor
}

// NewLedgerServer creates a new server with the given config.
func NewLedgerServer(cfg *config.Config, app *LedgerApp, l *zap.Logger, sig signal.Interceptor) *LedgerServer {
	return &LedgerServer{
		cfg:         cfg,
		app:         app,
		logger:      l,
		interceptor: sig,
	}
}

// RunUntilShutdown serves the ledger API and the metrics until a signal is
// received to shut down the process.
func (s *LedgerServer) RunUntilShutdown() error {
	if atomic.AddInt32(&s.started, 1) != 1 {
		return nil
	}

	metricsCfg := s.cfg.Metrics
	promAddr, err := metricsCfg.Address()
	if err != nil {
		return err
	}

	ps := NewPrometheusServer(promAddr, metricsCfg.UpdateInterval, s.logger)

	defer func() {
		s.app.API.Stop()
		s.logger.Info("shutdown ledger API server complete")
		ps.Stop()
		s.logger.Info("shutdown Prometheus server complete")
		if err := s.app.Close(); err != nil {
			s.logger.Error("failed to close the ledger database", zap.Error(err))
		}
	}()

	go ps.Start()
	go s.app.API.Start()

	s.logger.Info("staking ledger daemon is fully active!")

	// Wait for shutdown signal from either a graceful server stop or from
	// the interrupt handler.
	<-s.interceptor.ShutdownChannel()

	return nil
}
