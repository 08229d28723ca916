// Package upload stores validated product and profile images on local disk.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/config"
)

var (
	allowedExtensions = map[string]struct{}{
		".jpeg": {},
		".jpg":  {},
		".png":  {},
	}

	allowedMimeTypes = map[string]struct{}{
		"image/jpeg": {},
		"image/jpg":  {},
		"image/png":  {},
	}
)

// Image is an uploaded file as received from the client.
type Image struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type accepted struct {
	name string
	data []byte
}

// ImageStore validates images and writes them under a directory served at a public mount path.
type ImageStore struct {
	cfg    config.Upload
	logger *slog.Logger
	now    func() time.Time

	mkdirOnce sync.Once
	mkdirErr  error
}

func NewImageStore(cfg config.Upload, logger *slog.Logger) *ImageStore {
	return &ImageStore{
		cfg:    cfg,
		logger: logger.With(slog.String("service", "upload")),
		now:    time.Now,
	}
}

// MaxFiles is the number of images accepted in one batch.
func (s *ImageStore) MaxFiles() int {
	return s.cfg.MaxFiles
}

// MaxFileSize is the per-file size cap in bytes.
func (s *ImageStore) MaxFileSize() int64 {
	return s.cfg.MaxFileSize
}

// Accept validates and stores a single image, returning its public URL.
func (s *ImageStore) Accept(ctx context.Context, baseURL string, img Image) (string, error) {
	urls, err := s.AcceptBatch(ctx, baseURL, []Image{img})
	if err != nil {
		return "", err
	}
	return urls[0], nil
}

// AcceptBatch validates every image before writing any of them.
// Either all images are stored or none are.
func (s *ImageStore) AcceptBatch(ctx context.Context, baseURL string, imgs []Image) ([]string, error) {
	if len(imgs) == 0 {
		return []string{}, nil
	}
	if len(imgs) > s.cfg.MaxFiles {
		return nil, apperr.TooManyFilesErr.WithMsg(
			fmt.Sprintf("at most %d images may be uploaded at once", s.cfg.MaxFiles))
	}

	files := make([]accepted, 0, len(imgs))
	for _, img := range imgs {
		f, err := s.validate(img)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		name, err := s.write(f)
		if err != nil {
			s.Discard(ctx, urls)
			return nil, err
		}
		urls = append(urls, s.publicURL(baseURL, name))
	}

	return urls, nil
}

// Discard removes previously stored images. Unknown or foreign URLs are ignored.
func (s *ImageStore) Discard(ctx context.Context, urls []string) {
	for _, u := range urls {
		name, ok := s.nameFromURL(u)
		if !ok {
			continue
		}
		if err := os.Remove(filepath.Join(s.cfg.Dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.WarnContext(ctx, "error discarding image",
				slog.String("file", name), slog.Any("error", err))
		}
	}
}

func (s *ImageStore) validate(img Image) (accepted, error) {
	base := filepath.Base(strings.ReplaceAll(img.Filename, `\`, "/"))
	ext := strings.ToLower(filepath.Ext(base))
	if _, ok := allowedExtensions[ext]; !ok {
		return accepted{}, apperr.UnsupportedMediaTypeErr
	}

	mediaType, _, err := mime.ParseMediaType(img.ContentType)
	if err != nil {
		return accepted{}, apperr.UnsupportedMediaTypeErr.WrapParent(err)
	}
	if _, ok := allowedMimeTypes[strings.ToLower(mediaType)]; !ok {
		return accepted{}, apperr.UnsupportedMediaTypeErr
	}

	// Read one byte past the cap so oversized files are detected without buffering them whole.
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(img.Content, s.cfg.MaxFileSize+1))
	if err != nil {
		return accepted{}, fmt.Errorf("read image %s: %w", base, err)
	}
	if n > s.cfg.MaxFileSize {
		return accepted{}, apperr.PayloadTooLargeErr.WithMsg(
			fmt.Sprintf("%s exceeds the %d byte limit", base, s.cfg.MaxFileSize))
	}

	detected := mimetype.Detect(buf.Bytes())
	if !detected.Is("image/png") && !detected.Is("image/jpeg") {
		return accepted{}, apperr.UnsupportedMediaTypeErr
	}

	return accepted{name: sanitize(base), data: buf.Bytes()}, nil
}

func (s *ImageStore) ensureDir() error {
	s.mkdirOnce.Do(func() {
		s.mkdirErr = os.MkdirAll(s.cfg.Dir, 0o755)
	})
	if s.mkdirErr != nil {
		return fmt.Errorf("create upload dir: %w", s.mkdirErr)
	}
	return nil
}

func (s *ImageStore) write(f accepted) (string, error) {
	for attempt := 0; ; attempt++ {
		name := fmt.Sprintf("%d-%s", s.now().UnixNano()+int64(attempt), f.name)

		file, err := os.OpenFile(filepath.Join(s.cfg.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) && attempt < 10 {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create image file: %w", err)
		}

		if _, err := file.Write(f.data); err != nil {
			file.Close()
			os.Remove(file.Name())
			return "", fmt.Errorf("write image file: %w", err)
		}
		if err := file.Close(); err != nil {
			os.Remove(file.Name())
			return "", fmt.Errorf("close image file: %w", err)
		}

		return name, nil
	}
}

func (s *ImageStore) publicURL(baseURL, name string) string {
	return strings.TrimRight(baseURL, "/") + path.Join("/", s.cfg.MountPath, url.PathEscape(name))
}

func (s *ImageStore) nameFromURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	dir, name := path.Split(u.Path)
	if path.Clean(dir) != path.Clean(path.Join("/", s.cfg.MountPath)) || name == "" {
		return "", false
	}
	return name, true
}

// sanitize keeps the original name readable while dropping anything unsafe in a path or URL.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
