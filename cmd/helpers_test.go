package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"s3publish/config"
	"s3publish/internal/s3client"
)

const testBaseURL = "https://test-bucket.s3.us-east-1.amazonaws.com"

// memoryBucket is an in-memory s3client.Bucket.
type memoryBucket struct {
	mu      sync.Mutex
	calls   []string
	objects map[string]string
	types   map[string]string
	fail    map[string]error
	opened  []config.Config
}

func newMemoryBucket() *memoryBucket {
	return &memoryBucket{
		objects: make(map[string]string),
		types:   make(map[string]string),
		fail:    make(map[string]error),
	}
}

func (b *memoryBucket) Put(_ context.Context, key string, payload []byte, contentType, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, "put:"+key)
	if err := b.fail[key]; err != nil {
		return err
	}
	b.objects[key] = string(payload)
	b.types[key] = contentType
	return nil
}

func (b *memoryBucket) DeleteAll(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, "delete_all")
	b.objects = make(map[string]string)
	return nil
}

func (b *memoryBucket) List(_ context.Context, prefix string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var keys []string
	for key := range b.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *memoryBucket) PublicURL(key string) string {
	return testBaseURL + "/" + key
}

func (b *memoryBucket) BaseURL() string {
	return testBaseURL
}

func (b *memoryBucket) keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.objects))
	for key := range b.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (b *memoryBucket) history() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

// useMemoryBucket swaps the loaded config and the bucket opener for the
// duration of the test.
func useMemoryBucket(t *testing.T) *memoryBucket {
	t.Helper()
	bucket := newMemoryBucket()

	oldCfg, oldOpen := cfg, openBucket
	cfg = &config.Config{
		AccessKey:     "AKIAEXAMPLE1234",
		SecretKey:     "secret",
		BucketName:    "test-bucket",
		Region:        "us-east-1",
		ACL:           "public-read",
		Concurrency:   3,
		StorageDriver: config.DriverS3,
	}
	openBucket = func(settings *config.Config) (s3client.Bucket, error) {
		bucket.mu.Lock()
		bucket.opened = append(bucket.opened, *settings)
		bucket.mu.Unlock()
		return bucket, nil
	}
	t.Cleanup(func() {
		cfg, openBucket = oldCfg, oldOpen
	})
	return bucket
}

// resetFlags puts every flag back to its default since commands are package globals.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))

	err := rootCmd.Execute()
	return out.String(), err
}

// decodeOutput parses the JSON document that follows any prompt text.
func decodeOutput(t *testing.T, output string, v interface{}) {
	t.Helper()
	start := strings.IndexAny(output, "{[")
	require.GreaterOrEqual(t, start, 0, "no JSON in output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output[start:]), v))
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}
