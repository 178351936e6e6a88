package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/paydii_api/internal/service"
)

// Auditor runs one consistency check over the registries.
type Auditor interface {
	Run(ctx context.Context) (*service.AuditReport, error)
}

// AuditWorker verifies registry cross-references on a fixed interval.
type AuditWorker struct {
	auditor  Auditor
	interval time.Duration
}

// NewAuditWorker constructs an AuditWorker.
func NewAuditWorker(auditor Auditor, interval time.Duration) *AuditWorker {
	return &AuditWorker{
		auditor:  auditor,
		interval: interval,
	}
}

// Start runs one audit immediately, then one per interval until ctx is done.
// A non-positive interval runs the single audit and returns.
func (w *AuditWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting audit worker")

	w.run(ctx)
	if w.interval <= 0 {
		log.Warn().Dur("interval", w.interval).Msg("Audit interval not positive, periodic audits disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Audit worker stopped")
			return
		}
	}
}

func (w *AuditWorker) run(ctx context.Context) {
	report, err := w.auditor.Run(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Error().Err(err).Msg("Registry audit failed")
		}
		return
	}
	if report.OK() {
		log.Debug().Int("products", report.ProductsChecked).Msg("Registry audit clean")
		return
	}
	for _, issue := range report.Issues {
		log.Warn().
			Str("product_id", issue.ProductID).
			Str("problem", issue.Problem).
			Msg("Registry inconsistency")
	}
	log.Error().
		Int("products", report.ProductsChecked).
		Int("issues", len(report.Issues)).
		Msg("Registry audit found inconsistencies")
}
