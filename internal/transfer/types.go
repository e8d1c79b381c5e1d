// Package transfer is the bulk upload engine: it turns a local tree into a
// manifest of units, drains them through a pool of workers into a bucket and
// reports the one public URL the job produced.
package transfer

import (
	"context"
	"fmt"
)

const (
	DefaultACL         = "public-read"
	DefaultConcurrency = 3
)

// BucketHandle is the remote bucket a job writes into. It outlives the job.
// Put may be called concurrently for distinct keys.
type BucketHandle interface {
	Put(ctx context.Context, key string, payload []byte, contentType, acl string) error
	DeleteAll(ctx context.Context) error
	PublicURL(key string) string
	BaseURL() string
}

type JobKind int

const (
	SingleFile JobKind = iota + 1
	FolderCopy
	FullBucketSync
)

func (k JobKind) String() string {
	switch k {
	case SingleFile:
		return "single-file"
	case FolderCopy:
		return "folder-copy"
	case FullBucketSync:
		return "full-bucket-sync"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

type State int

const (
	StateCreated State = iota
	StateValidated
	StateManifestBuilt
	StatePrecleaning
	StateUploading
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateValidated:
		return "validated"
	case StateManifestBuilt:
		return "manifest-built"
	case StatePrecleaning:
		return "precleaning"
	case StateUploading:
		return "uploading"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Unit is one filesystem entry mapped to a remote key.
type Unit struct {
	LocalPath   string
	RemoteKey   string
	IsDirectory bool
	Size        int64
}

// Config is fixed for the lifetime of a job.
type Config struct {
	Bucket       string
	Region       string
	AccessKey    string
	AccessSecret string
	ACL          string
	Concurrency  int
	DryRun       bool
	Clean        bool
	Verbose      bool
	Kind         JobKind
}

func (c Config) Validate() error {
	switch {
	case c.AccessKey == "":
		return &ConfigError{Field: "access key"}
	case c.AccessSecret == "":
		return &ConfigError{Field: "access secret"}
	case c.Region == "":
		return &ConfigError{Field: "region"}
	case c.Bucket == "":
		return &ConfigError{Field: "bucket"}
	case c.Concurrency < 1:
		return &ConfigError{Field: "concurrency", Reason: "must be at least 1"}
	}

	switch c.Kind {
	case SingleFile, FolderCopy, FullBucketSync:
	default:
		return &ConfigError{Field: "job kind", Reason: fmt.Sprintf("unsupported %s", c.Kind)}
	}
	return nil
}

// WithDefaults fills the ACL and concurrency when they are unset.
func (c Config) WithDefaults() Config {
	if c.ACL == "" {
		c.ACL = DefaultACL
	}
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	return c
}

type Outcome int

const (
	OutcomeUploaded Outcome = iota + 1
	OutcomeSkippedDirectory
	OutcomeDryRun
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUploaded:
		return "uploaded"
	case OutcomeSkippedDirectory:
		return "skipped (directory)"
	case OutcomeDryRun:
		return "would upload"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ProgressEvent is observability only. Ordinal follows dequeue order, not
// completion order.
type ProgressEvent struct {
	Ordinal     int
	Total       int
	RemoteKey   string
	ContentType string
	Outcome     Outcome
	Err         error
}
