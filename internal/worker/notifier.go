package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/speeti/speeti/internal/adapter/mailer"
	"github.com/speeti/speeti/internal/domain/model"
)

// StoreFacade exposes the subset of application functionality required by
// the notifier.
type StoreFacade interface {
	OrdersForNotification(ctx context.Context, limit int) ([]model.StatusNotification, error)
	SendStatusMail(ctx context.Context, n model.StatusNotification) error
}

// Notifier announces order status changes to customers through the mail
// provider, using a polling dispatcher and a worker pool.
type Notifier struct {
	facade       StoreFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.StatusNotification
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewNotifier constructs the notification worker pool.
func NewNotifier(facade StoreFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Notifier {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Notifier{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.StatusNotification, batchSize*workers),
	}
}

// Start launches background processing.
func (p *Notifier) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *Notifier) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Notifier) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *Notifier) fetchAndDispatch(ctx context.Context) {
	notifications, err := p.facade.OrdersForNotification(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch orders for notification failed", slog.String("error", err.Error()))
		return
	}
	for _, n := range notifications {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- n:
		}
	}
}

func (p *Notifier) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handle(ctx, n)
		}
	}
}

func (p *Notifier) handle(ctx context.Context, n model.StatusNotification) {
	if err := p.facade.SendStatusMail(ctx, n); err != nil {
		var rateLimited mailer.TooManyRequestsError
		if errors.As(err, &rateLimited) {
			p.logger.Warn("mail provider rate limited", slog.Duration("retry_after", rateLimited.RetryAfter))
			select {
			case <-ctx.Done():
			case <-time.After(rateLimited.RetryAfter):
			}
			return
		}
		p.logger.Error("status mail failed",
			slog.String("order", n.Order.DisplayNumber()),
			slog.String("error", err.Error()),
		)
	}
}
