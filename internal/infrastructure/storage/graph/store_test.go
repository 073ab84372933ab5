package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) (*Store, *int) {
	t.Helper()
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/tenant-1/oauth2/v2.0/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse token form: %v", err)
		}
		if r.PostForm.Get("grant_type") != "client_credentials" {
			t.Errorf("grant_type = %q", r.PostForm.Get("grant_type"))
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-123","expires_in":3600}`))
	})
	mux.HandleFunc("/", handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store, err := New(Config{
		TenantID:     "tenant-1",
		ClientID:     "client-1",
		ClientSecret: "secret",
		DriveUser:    "filer@clinic.example",
		BaseURL:      server.URL,
		LoginURL:     server.URL,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return store, &tokenCalls
}

func TestSaveUploadsContent(t *testing.T) {
	var method, path, auth, body string
	store, tokenCalls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		raw := new(bytes.Buffer)
		_, _ = raw.ReadFrom(r.Body)
		body = raw.String()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	})

	err := store.Save(context.Background(), "02_保険証/card.jpg", bytes.NewBufferString("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if method != http.MethodPut {
		t.Fatalf("method = %s", method)
	}
	if !strings.HasSuffix(path, ":/content") || !strings.Contains(path, "/drive/root:/") {
		t.Fatalf("path = %s", path)
	}
	if auth != "Bearer tok-123" {
		t.Fatalf("auth = %q", auth)
	}
	if body != "jpeg-bytes" {
		t.Fatalf("body = %q", body)
	}
	if *tokenCalls != 1 {
		t.Fatalf("token calls = %d", *tokenCalls)
	}
}

func TestExists(t *testing.T) {
	found := false
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if !found {
			http.Error(w, `{"error":{"code":"itemNotFound"}}`, http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id":"item-1"}`))
	})

	ok, err := store.Exists(context.Background(), "02_保険証", "card.jpg")
	if err != nil || ok {
		t.Fatalf("Exists() = %v, %v; want false, nil", ok, err)
	}

	found = true
	ok, err = store.Exists(context.Background(), "02_保険証", "card.jpg")
	if err != nil || !ok {
		t.Fatalf("Exists() = %v, %v; want true, nil", ok, err)
	}
}

func TestEnsureFolderToleratesConflict(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"nameAlreadyExists"}}`, http.StatusConflict)
	})

	if err := store.EnsureFolder(context.Background(), "02_保険証"); err != nil {
		t.Fatalf("EnsureFolder() error = %v", err)
	}
}

func TestEnsureFolderCreatesNestedLevels(t *testing.T) {
	type createCall struct {
		path string
		name string
	}
	var calls []createCall
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode folder payload: %v", err)
		}
		calls = append(calls, createCall{path: r.URL.Path, name: payload.Name})
		if payload.Name == "スキャン書類" {
			// The base folder already exists on the drive.
			http.Error(w, `{"error":{"code":"nameAlreadyExists"}}`, http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	})

	if err := store.EnsureFolder(context.Background(), "スキャン書類/01_患者リスト"); err != nil {
		t.Fatalf("EnsureFolder() error = %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("create calls = %d, want 2", len(calls))
	}
	if calls[0].name != "スキャン書類" || !strings.HasSuffix(calls[0].path, "/drive/root/children") {
		t.Fatalf("first call = %+v", calls[0])
	}
	if calls[1].name != "01_患者リスト" {
		t.Fatalf("second call name = %q", calls[1].name)
	}
	if !strings.HasSuffix(calls[1].path, "/drive/root:/スキャン書類:/children") {
		t.Fatalf("second call path = %s", calls[1].path)
	}
	if strings.Contains(calls[1].name, "/") {
		t.Fatalf("child name contains separator: %q", calls[1].name)
	}
}

func TestShareLink(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":/createLink") {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"link":{"webUrl":"https://onedrive.example/s/abc"}}`))
	})

	link, err := store.ShareLink(context.Background(), "02_保険証/card.jpg")
	if err != nil {
		t.Fatalf("ShareLink() error = %v", err)
	}
	if link != "https://onedrive.example/s/abc" {
		t.Fatalf("link = %q", link)
	}
}

func TestTokenIsCached(t *testing.T) {
	store, tokenCalls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"item-1"}`))
	})

	ctx := context.Background()
	if _, err := store.Exists(ctx, "a", "b"); err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if _, err := store.Exists(ctx, "a", "c"); err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if *tokenCalls != 1 {
		t.Fatalf("token calls = %d, want 1", *tokenCalls)
	}
}
