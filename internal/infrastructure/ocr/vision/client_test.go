package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDetectTextImage(t *testing.T) {
	var captured annotateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/images:annotate" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("key") != "secret" {
			t.Errorf("missing api key, query = %s", r.URL.RawQuery)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"responses":[{"fullTextAnnotation":{"text":"保険証\n山田 太郎 様"}}]}`))
	}))
	defer server.Close()

	client := NewWithOptions("secret", Options{BaseURL: server.URL})
	text, err := client.DetectText(context.Background(), []byte("jpeg-bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("DetectText() error = %v", err)
	}
	if text != "保険証\n山田 太郎 様" {
		t.Fatalf("text = %q", text)
	}
	if len(captured.Requests) != 1 || captured.Requests[0].Features[0].Type != "DOCUMENT_TEXT_DETECTION" {
		t.Fatalf("request = %+v", captured)
	}
	if hints := captured.Requests[0].ImageContext.LanguageHints; len(hints) != 2 || hints[0] != "ja" {
		t.Fatalf("language hints = %v", hints)
	}
}

func TestDetectTextFallsBackToTextAnnotations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{"textAnnotations":[{"description":"同意書"}]}]}`))
	}))
	defer server.Close()

	client := NewWithOptions("secret", Options{BaseURL: server.URL})
	text, err := client.DetectText(context.Background(), []byte("x"), "image/png")
	if err != nil {
		t.Fatalf("DetectText() error = %v", err)
	}
	if text != "同意書" {
		t.Fatalf("text = %q", text)
	}
}

func TestDetectTextEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{}]}`))
	}))
	defer server.Close()

	client := NewWithOptions("secret", Options{BaseURL: server.URL})
	text, err := client.DetectText(context.Background(), []byte("x"), "image/jpeg")
	if err != nil {
		t.Fatalf("DetectText() error = %v", err)
	}
	if text != "" {
		t.Fatalf("text = %q, want empty", text)
	}
}

func TestDetectTextPDFJoinsPages(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"responses":[{"responses":[
			{"fullTextAnnotation":{"text":"一枚目"}},
			{"fullTextAnnotation":{"text":"二枚目"}}
		]}]}`))
	}))
	defer server.Close()

	client := NewWithOptions("secret", Options{BaseURL: server.URL})
	text, err := client.DetectText(context.Background(), []byte("%PDF"), "application/pdf")
	if err != nil {
		t.Fatalf("DetectText() error = %v", err)
	}
	if path != "/v1/files:annotate" {
		t.Fatalf("path = %s", path)
	}
	if text != "一枚目\n二枚目" {
		t.Fatalf("text = %q", text)
	}
}

func TestDetectTextResultError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{"error":{"code":3,"message":"bad image data"}}]}`))
	}))
	defer server.Close()

	client := NewWithOptions("secret", Options{BaseURL: server.URL})
	_, err := client.DetectText(context.Background(), []byte("x"), "image/jpeg")
	if err == nil || !strings.Contains(err.Error(), "bad image data") {
		t.Fatalf("expected result error, got %v", err)
	}
}

func TestDetectTextIncludesHTTPBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewWithOptions("secret", Options{BaseURL: server.URL})
	_, err := client.DetectText(context.Background(), []byte("x"), "image/jpeg")
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}
