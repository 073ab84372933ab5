// Package graph stores filed documents on OneDrive through the Microsoft
// Graph API: content upload, existence probes for the collision check,
// folder creation and organization-scoped share links.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ymatsuda/docfiler/internal/infrastructure/resilience"
)

const defaultBaseURL = "https://graph.microsoft.com/v1.0"

type Store struct {
	baseURL    string
	drivePath  string
	auth       *tokenSource
	httpClient *http.Client
	executor   *resilience.Executor
}

type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	// DriveUser is the UPN or object id of the account whose drive holds
	// the filing folders.
	DriveUser string

	BaseURL            string
	LoginURL           string
	Timeout            time.Duration
	ResilienceExecutor *resilience.Executor
}

func New(cfg Config) (*Store, error) {
	if cfg.TenantID == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("graph: tenant id, client id and client secret are required")
	}
	if cfg.DriveUser == "" {
		return nil, fmt.Errorf("graph: drive user is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	return &Store{
		baseURL:    strings.TrimRight(baseURL, "/"),
		drivePath:  "/users/" + url.PathEscape(cfg.DriveUser) + "/drive",
		auth:       newTokenSource(cfg, httpClient),
		httpClient: httpClient,
		executor:   cfg.ResilienceExecutor,
	}, nil
}

func (s *Store) Save(ctx context.Context, path string, data io.Reader) error {
	raw, err := io.ReadAll(data)
	if err != nil {
		return fmt.Errorf("read upload body: %w", err)
	}

	return s.execute(ctx, "graph.upload", func(ctx context.Context) error {
		endpoint := s.itemURL(path) + ":/content"
		req, err := s.newRequest(ctx, http.MethodPut, endpoint, bytes.NewReader(raw))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/octet-stream")
		return s.do(req, "upload", nil)
	})
}

func (s *Store) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	var body io.ReadCloser
	err := s.execute(ctx, "graph.download", func(ctx context.Context) error {
		endpoint := s.itemURL(path) + ":/content"
		req, err := s.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		resp, err := s.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("graph download request: %w", err)
		}
		if resp.StatusCode >= 300 {
			defer resp.Body.Close()
			return statusError("download", resp)
		}
		body = resp.Body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Exists probes the item by path; Graph answers 404 for free names.
func (s *Store) Exists(ctx context.Context, folder, filename string) (bool, error) {
	var exists bool
	err := s.execute(ctx, "graph.exists", func(ctx context.Context) error {
		endpoint := s.itemURL(strings.TrimRight(folder, "/") + "/" + filename)
		req, err := s.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		resp, err := s.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("graph exists request: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			exists = false
			return nil
		case resp.StatusCode >= 300:
			return statusError("exists", resp)
		default:
			exists = true
			return nil
		}
	})
	return exists, err
}

// EnsureFolder creates the folder level by level; existing levels are not
// an error. Destination paths are nested (base folder plus category folder)
// and Graph rejects path separators in a child name, so each segment gets
// its own create call under its parent.
func (s *Store) EnsureFolder(ctx context.Context, folder string) error {
	parent := ""
	for _, segment := range strings.Split(strings.Trim(folder, "/"), "/") {
		if segment == "" {
			continue
		}
		if err := s.ensureChildFolder(ctx, parent, segment); err != nil {
			return err
		}
		if parent == "" {
			parent = segment
		} else {
			parent = parent + "/" + segment
		}
	}
	return nil
}

func (s *Store) ensureChildFolder(ctx context.Context, parent, name string) error {
	return s.execute(ctx, "graph.ensure_folder", func(ctx context.Context) error {
		payload := map[string]any{
			"name":                              name,
			"folder":                            map[string]any{},
			"@microsoft.graph.conflictBehavior": "fail",
		}
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal folder request: %w", err)
		}

		endpoint := s.baseURL + s.drivePath + "/root/children"
		if parent != "" {
			endpoint = s.itemURL(parent) + ":/children"
		}
		req, err := s.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		err = s.do(req, "ensure folder", nil)
		if isConflict(err) {
			return nil
		}
		return err
	})
}

func (s *Store) ShareLink(ctx context.Context, path string) (string, error) {
	var link string
	err := s.execute(ctx, "graph.share_link", func(ctx context.Context) error {
		payload := map[string]string{"type": "view", "scope": "organization"}
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal link request: %w", err)
		}

		endpoint := s.itemURL(path) + ":/createLink"
		req, err := s.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		var response struct {
			Link struct {
				WebURL string `json:"webUrl"`
			} `json:"link"`
		}
		if err := s.do(req, "create link", &response); err != nil {
			return err
		}
		if response.Link.WebURL == "" {
			return fmt.Errorf("create link: empty webUrl in response")
		}
		link = response.Link.WebURL
		return nil
	})
	return link, err
}

func (s *Store) itemURL(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + s.drivePath + "/root:/" + strings.Join(segments, "/")
}

func (s *Store) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	token, err := s.auth.Token(ctx)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create graph request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

func (s *Store) do(req *http.Request, operation string, out any) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(operation, resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", operation, err)
		}
	}
	return nil
}

func (s *Store) execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	var err error
	if s.executor != nil {
		err = s.executor.Execute(ctx, operation, fn, classifyGraphError)
	} else {
		err = fn(ctx)
	}
	return wrapTemporaryIfNeeded(operation, err)
}

func statusError(operation string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &HTTPStatusError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(raw)),
	}
}

// isConflict matches the nameAlreadyExists answer to a create with
// conflictBehavior=fail.
func isConflict(err error) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusConflict
}
