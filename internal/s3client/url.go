package s3client

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/smithy-go"
)

func pathStyleURL(endpoint, bucket string) string {
	return strings.TrimSuffix(endpoint, "/") + "/" + bucket
}

func objectURL(baseURL, key string) string {
	segments := strings.Split(strings.TrimPrefix(key, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return baseURL + "/" + strings.Join(segments, "/")
}

func wrapAPIError(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("failed to %s (%s): %w", op, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
