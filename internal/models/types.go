package models

type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`
}

type PublishResult struct {
	JobID          string `json:"job_id"`
	JobKind        string `json:"job_kind"`
	BucketName     string `json:"bucket_name"`
	LocalPath      string `json:"local_path"`
	RemotePrefix   string `json:"remote_prefix,omitempty"`
	PublicURL      string `json:"public_url,omitempty"`
	State          string `json:"state"`
	DryRun         bool   `json:"dry_run"`
	TotalUnits     int    `json:"total_units"`
	TotalFiles     int    `json:"total_files"`
	TotalSizeBytes int64  `json:"total_size_bytes"`
	TotalSizeHuman string `json:"total_size_human"`
	OperationTime  string `json:"operation_time"`
	Duration       string `json:"duration"`
}

type FindResult struct {
	BucketName    string   `json:"bucket_name"`
	Prefix        string   `json:"prefix"`
	Filename      string   `json:"filename"`
	Key           string   `json:"key,omitempty"`
	PublicURL     string   `json:"public_url,omitempty"`
	Matches       []string `json:"matches"`
	OperationTime string   `json:"operation_time"`
}
