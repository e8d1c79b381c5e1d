// Package lookup finds previously published objects by name.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("no files were found")

type Lister interface {
	List(ctx context.Context, prefix string) ([]string, error)
	PublicURL(key string) string
}

type Match struct {
	Key       string   `json:"key"`
	PublicURL string   `json:"public_url"`
	Matches   []string `json:"matches"`
}

// Find returns the first key under prefix that contains filename. With
// mustExist set an empty result is ErrNotFound, otherwise a zero Match.
func Find(ctx context.Context, bucket Lister, prefix, filename string, mustExist bool) (*Match, error) {
	keys, err := bucket.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}

	var matches []string
	for _, key := range keys {
		if strings.Contains(key, filename) {
			matches = append(matches, key)
		}
	}
	sort.Strings(matches)

	if len(matches) == 0 {
		if mustExist {
			return nil, fmt.Errorf("%w with filename: %s", ErrNotFound, filename)
		}
		return &Match{}, nil
	}

	if len(matches) > 1 {
		slog.Warn("more than one file was found, returning the first which may not be the one you want",
			"filename", filename, "matches", len(matches))
	}

	return &Match{
		Key:       matches[0],
		PublicURL: bucket.PublicURL(matches[0]),
		Matches:   matches,
	}, nil
}
