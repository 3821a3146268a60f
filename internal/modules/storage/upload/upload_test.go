package upload

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
)

// memBackend records puts and removes in memory; failAfter makes the n-th
// Put fail to exercise rollback.
type memBackend struct {
	files     map[string][]byte
	puts      int
	failAfter int
}

func newMemBackend() *memBackend {
	return &memBackend{files: map[string][]byte{}, failAfter: -1}
}

func (b *memBackend) Put(_ context.Context, name, _ string, payload []byte) (string, error) {
	b.puts++
	if b.failAfter >= 0 && b.puts > b.failAfter {
		return "", errors.New("disk full")
	}
	b.files[name] = payload
	return "/uploads/" + name, nil
}

func (b *memBackend) Remove(_ context.Context, name string) error {
	delete(b.files, name)
	return nil
}

// buildForm assembles a parsed multipart form containing the given files
// as field → (filename, content type).
func buildForm(t *testing.T, files map[string][2]string) *multipart.Form {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, meta := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+meta[0]+`"`)
		h.Set("Content-Type", meta[1])
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte("payload-" + field)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form
}

func incoming(t *testing.T, field, filename, contentType string, rule Rule) Incoming {
	t.Helper()
	form := buildForm(t, map[string][2]string{field: {filename, contentType}})
	in, ok := FromForm(form, field, rule)
	if !ok {
		t.Fatalf("file %q missing from built form", field)
	}
	return in
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name        string
		filename    string
		contentType string
		rule        Rule
		wantOK      bool
	}{
		{"jpeg photo", "face.jpg", "image/jpeg", Photo, true},
		{"png photo", "face.PNG", "image/png", Photo, true},
		{"charset suffix", "face.jpg", "image/jpeg; charset=binary", Photo, true},
		{"pdf brochure", "plan.pdf", "application/pdf", ProjectAssets, true},
		{"webp slide", "slide.webp", "image/webp", SlideImage, true},
		{"webp photo rejected", "face.webp", "image/webp", Photo, false},
		{"exe rejected", "malware.exe", "application/octet-stream", Photo, false},
		{"pdf photo rejected", "doc.pdf", "application/pdf", Photo, false},
		{"spoofed extension", "face.jpg", "application/x-msdownload", Photo, false},
		{"spoofed mime", "script.sh", "image/jpeg", Photo, false},
		{"no extension", "face", "image/jpeg", Photo, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := incoming(t, "photo", tc.filename, tc.contentType, tc.rule)
			err := Validate(in)
			if tc.wantOK && err != nil {
				t.Errorf("Validate(%s) = %v, want nil", tc.filename, err)
			}
			if !tc.wantOK {
				if err == nil {
					t.Fatalf("Validate(%s) should fail", tc.filename)
				}
				if !IsRejected(err) {
					t.Errorf("error should be a rejection, got %v", err)
				}
			}
		})
	}
}

func TestSaveAllRejectsBeforeAnyWrite(t *testing.T) {
	backend := newMemBackend()
	s := New(backend)

	form := buildForm(t, map[string][2]string{
		"image":    {"front.jpg", "image/jpeg"},
		"brochure": {"virus.exe", "application/octet-stream"},
	})
	img, _ := FromForm(form, "image", ProjectAssets)
	bro, _ := FromForm(form, "brochure", ProjectAssets)

	_, err := s.SaveAll(context.Background(), []Incoming{img, bro})
	if !IsRejected(err) {
		t.Fatalf("SaveAll = %v, want rejection", err)
	}
	if backend.puts != 0 {
		t.Errorf("backend saw %d puts, want 0 (validation must run before writes)", backend.puts)
	}
}

func TestSaveAllRollsBackOnStoreFailure(t *testing.T) {
	backend := newMemBackend()
	backend.failAfter = 1
	s := New(backend)

	form := buildForm(t, map[string][2]string{
		"image":    {"front.jpg", "image/jpeg"},
		"brochure": {"plan.pdf", "application/pdf"},
	})
	img, _ := FromForm(form, "image", ProjectAssets)
	bro, _ := FromForm(form, "brochure", ProjectAssets)

	_, err := s.SaveAll(context.Background(), []Incoming{img, bro})
	if err == nil {
		t.Fatal("SaveAll should fail when the backend fails")
	}
	if len(backend.files) != 0 {
		t.Errorf("%d files left behind after failed request, want 0", len(backend.files))
	}
}

func TestSaveAllReturnsFieldURLs(t *testing.T) {
	backend := newMemBackend()
	s := New(backend)

	form := buildForm(t, map[string][2]string{
		"image":    {"front.jpg", "image/jpeg"},
		"brochure": {"plan.pdf", "application/pdf"},
	})
	img, _ := FromForm(form, "image", ProjectAssets)
	bro, _ := FromForm(form, "brochure", ProjectAssets)

	urls, err := s.SaveAll(context.Background(), []Incoming{img, bro})
	if err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("urls = %v, want 2 entries", urls)
	}
	if !strings.HasPrefix(urls["image"], "/uploads/") || !strings.HasSuffix(urls["image"], "front.jpg") {
		t.Errorf("image url = %q", urls["image"])
	}
	if !strings.Contains(urls["brochure"], "plan.pdf") {
		t.Errorf("brochure url = %q", urls["brochure"])
	}
}

func TestBuildFileNameUniqueAndSanitized(t *testing.T) {
	a := buildFileName("my photo (1).jpg")
	b := buildFileName("my photo (1).jpg")
	if a == b {
		t.Errorf("two names for the same original collided: %q", a)
	}
	if strings.ContainsAny(a, " ()") {
		t.Errorf("unsafe characters survived sanitization: %q", a)
	}
	if !strings.HasSuffix(a, ".jpg") {
		t.Errorf("extension lost: %q", a)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"clean-name.jpg":  "clean-name.jpg",
		"weird name!.png": "weird-name-.png",
		"../../etc":       "etc",
		"???":             "file",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Errorf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
