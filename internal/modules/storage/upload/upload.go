package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// Rule is the allow-list for one upload category. Both the filename
// extension and the declared media type must match for a file to be
// accepted.
type Rule struct {
	Label string
	Exts  []string
	MIMEs []string
}

var (
	// ProjectAssets covers project images and brochures.
	ProjectAssets = Rule{
		Label: "images (JPEG, PNG) and PDFs",
		Exts:  []string{"jpeg", "jpg", "png", "pdf"},
		MIMEs: []string{"image/jpeg", "image/jpg", "image/png", "application/pdf"},
	}
	// Photo covers testimonial portraits.
	Photo = Rule{
		Label: "images (JPEG, PNG)",
		Exts:  []string{"jpeg", "jpg", "png"},
		MIMEs: []string{"image/jpeg", "image/jpg", "image/png"},
	}
	// SlideImage covers hero carousel slides.
	SlideImage = Rule{
		Label: "images (JPEG, PNG, WEBP)",
		Exts:  []string{"jpeg", "jpg", "png", "webp"},
		MIMEs: []string{"image/jpeg", "image/jpg", "image/png", "image/webp"},
	}
)

// RejectedError marks a file that failed the allow-list check; handlers
// translate it into a 400 naming the offending field.
type RejectedError struct {
	Field  string
	Reason string
}

func (e *RejectedError) Error() string { return e.Reason }

// IsRejected reports whether err is a validation rejection rather than a
// storage failure.
func IsRejected(err error) bool {
	var re *RejectedError
	return errors.As(err, &re)
}

// Backend stores validated payloads under a name and returns a publicly
// resolvable URL for it.
type Backend interface {
	Put(ctx context.Context, name, contentType string, payload []byte) (string, error)
	Remove(ctx context.Context, name string) error
}

// Storage is the upload pipeline shared by every resource handler.
type Storage struct {
	backend Backend
}

func New(b Backend) *Storage { return &Storage{backend: b} }

// Incoming is one multipart file field awaiting validation and storage.
type Incoming struct {
	Field  string
	Header *multipart.FileHeader
	Rule   Rule
}

// Validate checks the file's extension and declared media type against its
// rule. It never reads the payload.
func Validate(in Incoming) error {
	name := strings.TrimSpace(in.Header.Filename)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if !containsFold(in.Rule.Exts, ext) {
		return &RejectedError{
			Field:  in.Field,
			Reason: fmt.Sprintf("%s: only %s are allowed", in.Field, in.Rule.Label),
		}
	}

	declared := strings.TrimSpace(in.Header.Header.Get("Content-Type"))
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if !containsFold(in.Rule.MIMEs, declared) {
		return &RejectedError{
			Field:  in.Field,
			Reason: fmt.Sprintf("%s: only %s are allowed", in.Field, in.Rule.Label),
		}
	}
	return nil
}

// SaveAll validates every file first and only then writes, so a rejected
// field leaves no partial uploads behind. A storage failure midway removes
// the files already written for this request. The result maps field name
// to the stored public URL.
func (s *Storage) SaveAll(ctx context.Context, files []Incoming) (map[string]string, error) {
	for _, in := range files {
		if err := Validate(in); err != nil {
			return nil, err
		}
	}

	urls := make(map[string]string, len(files))
	var stored []string
	for _, in := range files {
		name := buildFileName(in.Header.Filename)
		payload, err := readAll(in.Header)
		if err != nil {
			s.rollback(ctx, stored)
			return nil, fmt.Errorf("read %s: %w", in.Field, err)
		}
		url, err := s.backend.Put(ctx, name, in.Header.Header.Get("Content-Type"), payload)
		if err != nil {
			s.rollback(ctx, stored)
			return nil, fmt.Errorf("store %s: %w", in.Field, err)
		}
		stored = append(stored, name)
		urls[in.Field] = url
	}
	return urls, nil
}

// Save stores a single field.
func (s *Storage) Save(ctx context.Context, in Incoming) (string, error) {
	urls, err := s.SaveAll(ctx, []Incoming{in})
	if err != nil {
		return "", err
	}
	return urls[in.Field], nil
}

func (s *Storage) rollback(ctx context.Context, names []string) {
	for _, name := range names {
		_ = s.backend.Remove(ctx, name)
	}
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func containsFold(list []string, v string) bool {
	if v == "" {
		return false
	}
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
