package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/upload"
)

// multipartMemory is the part of a multipart body kept in memory, the rest spills to temp files.
const multipartMemory = 8 << 20

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

func (s *Service) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.ValidationErr.WithMsg("request body is empty")
		}
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return apperr.ValidationErr.WithMsg("invalid JSON body").WrapParent(err)
	}
	return s.validator.Validate(dst)
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// parseMultipart caps the body at what the upload limits allow and parses it.
func (s *Service) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	if !isMultipart(r) {
		return apperr.ValidationErr.WithMsg("expected a multipart/form-data body")
	}

	maxBody := int64(s.uploadCfg.MaxFiles)*s.uploadCfg.MaxFileSize + multipartMemory
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return apperr.ValidationErr.WithMsg("invalid multipart body").WrapParent(err)
	}
	return nil
}

// formImages opens the files of a multipart field. The returned func closes them.
func (s *Service) formImages(r *http.Request, field string) ([]upload.Image, func(), error) {
	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File[field]
	}
	if len(headers) > s.uploadCfg.MaxFiles {
		return nil, func() {}, apperr.TooManyFilesErr.WithMsg(
			fmt.Sprintf("at most %d images may be uploaded at once", s.uploadCfg.MaxFiles))
	}

	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	images := make([]upload.Image, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("open uploaded file: %w", err)
		}
		files = append(files, f)
		images = append(images, upload.Image{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     f,
		})
	}

	return images, closeAll, nil
}

// baseURL is the scheme and host clients use to reach this service.
func (s *Service) baseURL(r *http.Request) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimRight(s.cfg.PublicURL, "/")
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme, _, _ = strings.Cut(proto, ",")
		scheme = strings.TrimSpace(scheme)
	}
	return scheme + "://" + r.Host
}

func bindPage(r *http.Request) (model.PageParams, error) {
	query := r.URL.Query()

	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &page); err != nil {
		return model.PageParams{}, apperr.InvalidPaginationErr.WrapParent(err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &limit); err != nil {
		return model.PageParams{}, apperr.InvalidPaginationErr.WrapParent(err)
	}

	return model.NewPageParams(page, limit), nil
}

func bindSearchQuery(r *http.Request) (string, error) {
	var q *string
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &q); err != nil {
		return "", apperr.ValidationErr.WithMsg("invalid search query").WrapParent(err)
	}
	if q == nil {
		return "", nil
	}
	return *q, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperr.ValidationErr.WithMsg("id must be a valid UUID").WrapParent(err)
	}
	return id, nil
}

// form reads typed optional values out of a parsed form. The first failure sticks.
type form struct {
	values url.Values
	err    error
}

func newForm(r *http.Request) *form {
	var values url.Values
	if r.MultipartForm != nil {
		values = r.MultipartForm.Value
	}
	return &form{values: values}
}

func (f *form) has(key string) bool {
	_, ok := f.values[key]
	return ok
}

func (f *form) text(key string) *string {
	if !f.has(key) {
		return nil
	}
	v := f.values.Get(key)
	return &v
}

func (f *form) integer(key string) *int {
	raw := f.text(key)
	if raw == nil || f.err != nil {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		f.fail(key, "an integer", err)
		return nil
	}
	return &v
}

func (f *form) number(key string) *float64 {
	raw := f.text(key)
	if raw == nil || f.err != nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		f.fail(key, "a number", err)
		return nil
	}
	return &v
}

func (f *form) id(key string) *uuid.UUID {
	raw := f.text(key)
	if raw == nil || *raw == "" || f.err != nil {
		return nil
	}
	v, err := uuid.Parse(*raw)
	if err != nil {
		f.fail(key, "a valid UUID", err)
		return nil
	}
	return &v
}

// nullableID returns the field as an explicit value when present. An empty value clears it.
func (f *form) nullableID(key string) nullableID {
	if !f.has(key) {
		return nullableID{}
	}
	return nullableID{Set: true, ID: f.id(key)}
}

// nullableID tells an absent field apart from one explicitly sent as null or "".
type nullableID struct {
	Set bool
	ID  *uuid.UUID
}

func (n *nullableID) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("unmarshal id: %w", err)
	}

	n.Set, n.ID = true, nil
	if raw == nil || *raw == "" {
		return nil
	}

	id, err := uuid.Parse(*raw)
	if err != nil {
		return fmt.Errorf("parse id: %w", err)
	}
	n.ID = &id
	return nil
}

func (n nullableID) cleared() bool {
	return n.Set && n.ID == nil
}

// specifications accepts either a JSON object in the "specifications" field or
// one "specifications[<name>]" field per attribute.
func (f *form) specifications() *model.Specifications {
	if f.err != nil {
		return nil
	}

	if raw := f.text("specifications"); raw != nil && *raw != "" {
		var spec model.Specifications
		if err := json.Unmarshal([]byte(*raw), &spec); err != nil {
			f.fail("specifications", "a JSON object", err)
			return nil
		}
		return &spec
	}

	var (
		spec  model.Specifications
		found bool
	)
	for _, field := range []struct {
		name string
		dst  *string
	}{
		{"processor", &spec.Processor},
		{"ram", &spec.RAM},
		{"storage", &spec.Storage},
		{"display_size", &spec.DisplaySize},
		{"operating_system", &spec.OperatingSystem},
		{"color", &spec.Color},
		{"resolution", &spec.Resolution},
		{"camera", &spec.Camera},
	} {
		if v := f.text("specifications[" + field.name + "]"); v != nil {
			*field.dst = *v
			found = true
		}
	}
	if !found {
		return nil
	}
	return &spec
}

func (f *form) fail(key, want string, err error) {
	f.err = apperr.ValidationErr.WithMsg(fmt.Sprintf("%s must be %s", key, want)).WrapParent(err)
}
