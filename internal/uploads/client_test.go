package uploads

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		if header.Filename != "shot.png" {
			http.Error(w, "wrong filename", http.StatusBadRequest)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			http.Error(w, "missing auth", http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"url":"https://cdn.noizee.shop/shot.png"}`)
	}))
	defer srv.Close()

	c, err := New(Config{Endpoint: srv.URL, Tokens: staticToken("tok")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := c.UploadImage(context.Background(), "shot.png", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if result.URL != "https://cdn.noizee.shop/shot.png" {
		t.Fatalf("url = %q", result.URL)
	}
}

func TestUploadRejectsExtension(t *testing.T) {
	c, err := New(Config{Endpoint: "https://assets.noizee.shop/upload"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.UploadImage(context.Background(), "script.exe", strings.NewReader("x")); err == nil {
		t.Fatalf("executable upload must be rejected")
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	c, err := New(Config{Endpoint: "https://assets.noizee.shop/upload", MaxBytes: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.UploadImage(context.Background(), "big.png", strings.NewReader("way more than eight bytes")); err == nil {
		t.Fatalf("oversized upload must be rejected")
	}
}

func TestEndpointValidation(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("empty endpoint must fail")
	}
	if _, err := New(Config{Endpoint: "ftp://assets.noizee.shop"}); err == nil {
		t.Fatalf("non-http scheme must fail")
	}
}

type staticToken string

func (s staticToken) Token() string { return string(s) }
