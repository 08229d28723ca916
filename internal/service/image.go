package service

import (
	"context"

	"github.com/tuanvumaihuynh/inventory-service/internal/storage/upload"
)

// ImageIngester stores uploaded images and hands back their public URLs.
// *upload.ImageStore is the production implementation.
type ImageIngester interface {
	AcceptBatch(ctx context.Context, baseURL string, imgs []upload.Image) ([]string, error)
	Discard(ctx context.Context, urls []string)
}

var _ ImageIngester = (*upload.ImageStore)(nil)
