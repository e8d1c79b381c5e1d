package transfer

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const fallbackContentType = "application/octet-stream"

// Always wins over the sniffer.
var contentTypeOverrides = map[string]string{
	".css": "text/css",
	".js":  "text/javascript",
}

type Sniffer interface {
	Sniff(path string) (string, error)
}

type MimetypeSniffer struct{}

func (MimetypeSniffer) Sniff(path string) (string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	return mt.String(), nil
}

type ContentTypeResolver struct {
	sniffer Sniffer
}

// NewContentTypeResolver uses mimetype sniffing when sniffer is nil.
func NewContentTypeResolver(sniffer Sniffer) *ContentTypeResolver {
	if sniffer == nil {
		sniffer = MimetypeSniffer{}
	}
	return &ContentTypeResolver{sniffer: sniffer}
}

func (r *ContentTypeResolver) Resolve(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if contentType, exists := contentTypeOverrides[ext]; exists {
		return contentType
	}

	contentType, err := r.sniffer.Sniff(path)
	if err != nil || contentType == "" {
		return fallbackContentType
	}
	return contentType
}
