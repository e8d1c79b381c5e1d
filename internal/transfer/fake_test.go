package transfer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const fakeBaseURL = "https://test-bucket.s3.us-east-1.amazonaws.com"

type putCall struct {
	Key         string
	Payload     string
	ContentType string
	ACL         string
}

// fakeBucket records every call in order and fails puts for keys in failKeys.
type fakeBucket struct {
	mu        sync.Mutex
	calls     []string
	puts      []putCall
	deletes   int
	inFlight  map[string]bool
	overlap   bool
	failKeys  map[string]error
	deleteErr error
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{
		inFlight: make(map[string]bool),
		failKeys: make(map[string]error),
	}
}

func (b *fakeBucket) Put(_ context.Context, key string, payload []byte, contentType, acl string) error {
	b.mu.Lock()
	if b.inFlight[key] {
		b.overlap = true
	}
	b.inFlight[key] = true
	b.calls = append(b.calls, "put:"+key)
	b.puts = append(b.puts, putCall{Key: key, Payload: string(payload), ContentType: contentType, ACL: acl})
	err := b.failKeys[key]
	b.mu.Unlock()

	runtime.Gosched()

	b.mu.Lock()
	delete(b.inFlight, key)
	b.mu.Unlock()
	return err
}

func (b *fakeBucket) DeleteAll(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, "delete_all")
	b.deletes++
	return b.deleteErr
}

func (b *fakeBucket) PublicURL(key string) string {
	return fakeBaseURL + "/" + key
}

func (b *fakeBucket) BaseURL() string {
	return fakeBaseURL
}

func (b *fakeBucket) putsByKey() map[string]putCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]putCall, len(b.puts))
	for _, p := range b.puts {
		out[p.Key] = p
	}
	return out
}

type staticSniffer struct {
	contentType string
	err         error
}

func (s staticSniffer) Sniff(string) (string, error) {
	return s.contentType, s.err
}

var errSnifferUnavailable = errors.New("sniffer unavailable")

// writeTree creates files (and their parent directories) under a temp root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func testConfig(kind JobKind) Config {
	return Config{
		Bucket:       "test-bucket",
		Region:       "us-east-1",
		AccessKey:    "test-access-key",
		AccessSecret: "test-secret-key",
		Kind:         kind,
	}
}
