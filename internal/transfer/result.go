package transfer

import "time"

// Result describes a finished job. The totals count the manifest, not
// upload outcomes.
type Result struct {
	JobID      string
	Kind       JobKind
	Bucket     string
	State      State
	PublicURL  string
	DryRun     bool
	TotalUnits int
	TotalFiles int
	TotalBytes int64
	StartedAt  time.Time
	Duration   time.Duration
}

func (j *Job) result(startedAt time.Time) *Result {
	result := &Result{
		JobID:      j.ID,
		Kind:       j.Config.Kind,
		Bucket:     j.Config.Bucket,
		State:      j.state,
		DryRun:     j.Config.DryRun,
		TotalUnits: len(j.manifest),
		StartedAt:  startedAt,
		Duration:   time.Since(startedAt),
	}
	for _, unit := range j.manifest {
		if unit.IsDirectory {
			continue
		}
		result.TotalFiles++
		result.TotalBytes += unit.Size
	}
	if j.bucket != nil {
		result.PublicURL = PublicURL(j.Config.Kind, j.bucket, j.RemotePrefix, j.manifest)
	}
	return result
}

// PublicURL picks the single URL a job reports: the object itself for a
// single file, the remote prefix for a folder copy and the bucket root for a
// full sync.
func PublicURL(kind JobKind, bucket BucketHandle, remotePrefix string, manifest []Unit) string {
	switch kind {
	case SingleFile:
		if len(manifest) == 0 {
			return ""
		}
		return bucket.PublicURL(manifest[0].RemoteKey)
	case FolderCopy:
		prefix := RemoteKey(remotePrefix, "")
		if prefix == "" {
			return bucket.BaseURL()
		}
		return bucket.PublicURL(prefix)
	case FullBucketSync:
		return bucket.BaseURL()
	default:
		return ""
	}
}
