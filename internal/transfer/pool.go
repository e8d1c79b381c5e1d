package transfer

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
)

// WorkerPool drains a Queue with Workers goroutines. A failed put is logged
// and skipped unless FailFast is set, in which case the first failure stops
// every worker and is returned from Run.
type WorkerPool struct {
	Workers    int
	Bucket     BucketHandle
	Resolver   *ContentTypeResolver
	ACL        string
	DryRun     bool
	FailFast   bool
	Verbose    bool
	Logger     *slog.Logger
	OnProgress func(ProgressEvent)

	progressMu sync.Mutex
}

// Run returns once every worker has seen an empty queue.
func (p *WorkerPool) Run(ctx context.Context, q *Queue) error {
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	if p.Resolver == nil {
		p.Resolver = NewContentTypeResolver(nil)
	}

	workers := p.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			return p.work(gctx, q)
		})
	}
	return g.Wait()
}

func (p *WorkerPool) work(ctx context.Context, q *Queue) error {
	for {
		// Only a fail-fast pool stops early; a sibling's failure cancels ctx.
		if p.FailFast && ctx.Err() != nil {
			return nil
		}

		unit, seq, ok := q.TakeNext()
		if !ok {
			return nil
		}

		event := ProgressEvent{
			Ordinal:   seq,
			Total:     q.Total(),
			RemoteKey: unit.RemoteKey,
		}

		if unit.IsDirectory {
			event.Outcome = OutcomeSkippedDirectory
			p.emit(event)
			continue
		}

		event.ContentType = p.Resolver.Resolve(unit.LocalPath)

		if p.DryRun {
			event.Outcome = OutcomeDryRun
			p.emit(event)
			continue
		}

		if err := p.upload(ctx, unit, event.ContentType); err != nil {
			event.Outcome = OutcomeFailed
			event.Err = err
			p.emit(event)
			if p.FailFast {
				return err
			}
			continue
		}

		event.Outcome = OutcomeUploaded
		p.emit(event)
	}
}

func (p *WorkerPool) upload(ctx context.Context, unit Unit, contentType string) error {
	payload, err := os.ReadFile(unit.LocalPath)
	if err != nil {
		return &UploadError{Key: unit.RemoteKey, Err: err}
	}

	if err := p.Bucket.Put(ctx, unit.RemoteKey, payload, contentType, p.ACL); err != nil {
		return &UploadError{Key: unit.RemoteKey, Err: err}
	}
	return nil
}

func (p *WorkerPool) emit(event ProgressEvent) {
	p.progressMu.Lock()
	defer p.progressMu.Unlock()

	attrs := []any{
		"ordinal", event.Ordinal,
		"total", event.Total,
		"key", event.RemoteKey,
		"outcome", event.Outcome.String(),
	}
	if event.ContentType != "" {
		attrs = append(attrs, "content_type", event.ContentType)
	}

	switch {
	case event.Err != nil:
		p.Logger.Warn("upload failed", append(attrs, "error", event.Err)...)
	case p.Verbose:
		p.Logger.Info("transfer", attrs...)
	default:
		p.Logger.Debug("transfer", attrs...)
	}

	if p.OnProgress != nil {
		p.OnProgress(event)
	}
}
