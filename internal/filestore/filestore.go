// Package filestore resolves download URLs for photo attachments stored in
// an object store.
package filestore

import (
	"context"
	"fmt"

	"github.com/storeadm/backend/internal/domain"
)

// Presigner produces a time-limited download URL for an object key.
type Presigner interface {
	PresignDownload(ctx context.Context, key string) (string, error)
}

// FillDownloadURLs returns a copy of refs with DownloadURL populated from
// the presigner. URLs are computed on every read and are never persisted.
func FillDownloadURLs(ctx context.Context, p Presigner, refs []domain.FileRef) ([]domain.FileRef, error) {
	if len(refs) == 0 {
		return refs, nil
	}

	out := make([]domain.FileRef, len(refs))
	for i, r := range refs {
		url, err := p.PresignDownload(ctx, r.Key)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", r.Key, err)
		}
		r.DownloadURL = url
		out[i] = r
	}
	return out, nil
}
