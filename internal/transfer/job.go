package transfer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Job is one run of the engine: created, run once, discarded.
type Job struct {
	ID           string
	Config       Config
	LocalPath    string
	RemotePrefix string

	bucket     BucketHandle
	resolver   *ContentTypeResolver
	logger     *slog.Logger
	onProgress func(ProgressEvent)

	state    State
	manifest []Unit
	queue    *Queue
}

type Option func(*Job)

func WithLogger(logger *slog.Logger) Option {
	return func(j *Job) {
		if logger != nil {
			j.logger = logger
		}
	}
}

// WithProgress registers a callback for every ProgressEvent. Calls are
// serialized.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(j *Job) {
		j.onProgress = fn
	}
}

func WithSniffer(sniffer Sniffer) Option {
	return func(j *Job) {
		j.resolver = NewContentTypeResolver(sniffer)
	}
}

// NewJob prepares a job. localPath is a file for SingleFile jobs and a
// directory otherwise.
func NewJob(cfg Config, localPath, remotePrefix string, bucket BucketHandle, opts ...Option) *Job {
	j := &Job{
		ID:           uuid.NewString(),
		Config:       cfg.WithDefaults(),
		LocalPath:    localPath,
		RemotePrefix: remotePrefix,
		bucket:       bucket,
		logger:       slog.Default(),
		state:        StateCreated,
	}
	for _, opt := range opts {
		opt(j)
	}
	if j.resolver == nil {
		j.resolver = NewContentTypeResolver(nil)
	}
	j.logger = j.logger.With("job_id", j.ID, "job_kind", j.Config.Kind.String())
	return j
}

func (j *Job) State() State {
	return j.state
}

// Run executes the job. Bulk jobs complete even when single units fail to
// upload; a SingleFile job whose put fails is aborted. Every fatal error
// matches ErrAborted and the returned Result is never nil.
func (j *Job) Run(ctx context.Context) (*Result, error) {
	startedAt := time.Now()

	if err := j.validate(); err != nil {
		return j.abort(startedAt, err)
	}
	j.state = StateValidated

	manifest, err := j.buildManifest()
	if err != nil {
		return j.abort(startedAt, err)
	}
	j.manifest = manifest
	j.queue = NewQueue(manifest)
	j.state = StateManifestBuilt

	j.logger.Info("manifest built",
		"local", j.LocalPath,
		"total_units", len(manifest),
		"threads", j.Config.Concurrency,
		"dry_run", j.Config.DryRun,
	)

	if j.Config.Kind == FullBucketSync && j.Config.Clean {
		j.state = StatePrecleaning
		if err := Preclean(ctx, j.bucket, j.Config.Bucket, j.Config.DryRun, j.logger); err != nil {
			return j.abort(startedAt, err)
		}
	}

	j.state = StateUploading
	pool := &WorkerPool{
		Workers:    j.Config.Concurrency,
		Bucket:     j.bucket,
		Resolver:   j.resolver,
		ACL:        j.Config.ACL,
		DryRun:     j.Config.DryRun,
		FailFast:   j.Config.Kind == SingleFile,
		Verbose:    j.Config.Verbose,
		Logger:     j.logger,
		OnProgress: j.onProgress,
	}
	if err := pool.Run(ctx, j.queue); err != nil {
		return j.abort(startedAt, err)
	}

	j.state = StateCompleted
	result := j.result(startedAt)
	j.logger.Info("transfer completed", "public_url", result.PublicURL, "duration", result.Duration)
	return result, nil
}

func (j *Job) validate() error {
	if err := j.Config.Validate(); err != nil {
		return err
	}
	if j.LocalPath == "" {
		if j.Config.Kind == SingleFile {
			return &ConfigError{Field: "path to local file"}
		}
		return &ConfigError{Field: "path to local folder"}
	}
	if j.bucket == nil {
		return &ConfigError{Field: "bucket handle"}
	}
	return nil
}

func (j *Job) buildManifest() ([]Unit, error) {
	if j.Config.Kind == SingleFile {
		return FileManifest(j.LocalPath, j.RemotePrefix)
	}
	return BuildManifest(j.LocalPath, j.RemotePrefix)
}

func (j *Job) abort(startedAt time.Time, err error) (*Result, error) {
	j.state = StateAborted

	var uploadErr *UploadError
	if errors.As(err, &uploadErr) {
		j.logger.Error("failed to upload file", "key", uploadErr.Key, "error", uploadErr.Err)
	} else {
		j.logger.Error("transfer aborted", "error", err)
	}

	result := j.result(startedAt)
	result.PublicURL = ""
	return result, aborted(err)
}
