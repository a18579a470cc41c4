package worker

import (
	"context"
	"sync"
	"time"

	"github.com/kingrain94/shop-platform-api/pkg/logger"
)

// OwnerReconciler retries tenant-side owner mirror writes.
type OwnerReconciler interface {
	ReconcileOwners(ctx context.Context) error
}

// ReconcileWorker periodically retries the tenant-database owner mirror
// for tenants left in a partial-success state by provisioning. This is the
// automatic recovery path for the intentional master-wins asymmetry: the
// master rows stay committed and only the tenant-side insert is retried.
type ReconcileWorker struct {
	reconciler   OwnerReconciler
	logger       *logger.Logger
	pollInterval time.Duration
	shutdownChan chan struct{}
	waitGroup    sync.WaitGroup
}

func NewReconcileWorker(reconciler OwnerReconciler, logger *logger.Logger, pollInterval time.Duration) *ReconcileWorker {
	return &ReconcileWorker{
		reconciler:   reconciler,
		logger:       logger,
		pollInterval: pollInterval,
		shutdownChan: make(chan struct{}),
	}
}

func (w *ReconcileWorker) Start() {
	w.logger.Info("Starting owner reconcile worker...")
	w.waitGroup.Add(1)
	go w.run()
}

func (w *ReconcileWorker) Stop() {
	w.logger.Info("Stopping owner reconcile worker...")
	close(w.shutdownChan)
	w.waitGroup.Wait()
	w.logger.Info("Owner reconcile worker stopped")
}

func (w *ReconcileWorker) run() {
	defer w.waitGroup.Done()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.shutdownChan:
			return
		case <-ticker.C:
			if err := w.reconciler.ReconcileOwners(context.Background()); err != nil {
				w.logger.Errorf("owner reconcile pass failed: %v", err)
			}
		}
	}
}
