// Package vision calls the Google Cloud Vision REST API to transcribe
// scanned documents. Images go through images:annotate, PDFs through the
// synchronous files:annotate endpoint.
package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ymatsuda/docfiler/internal/infrastructure/resilience"
)

const defaultBaseURL = "https://vision.googleapis.com"

type Client struct {
	baseURL    string
	apiKey     string
	langHints  []string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Options struct {
	BaseURL            string
	Timeout            time.Duration
	LanguageHints      []string
	ResilienceExecutor *resilience.Executor
}

func New(apiKey string) *Client {
	return NewWithOptions(apiKey, Options{})
}

func NewWithOptions(apiKey string, options Options) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	hints := options.LanguageHints
	if len(hints) == 0 {
		hints = []string{"ja", "en"}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		langHints:  hints,
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.ResilienceExecutor,
	}
}

type annotateRequest struct {
	Requests []annotation `json:"requests"`
}

type annotation struct {
	Image        *imagePayload `json:"image,omitempty"`
	InputConfig  *inputConfig  `json:"inputConfig,omitempty"`
	Features     []feature     `json:"features"`
	ImageContext *imageContext `json:"imageContext,omitempty"`
}

type imagePayload struct {
	Content string `json:"content"`
}

type inputConfig struct {
	Content  string `json:"content"`
	MimeType string `json:"mimeType"`
}

type feature struct {
	Type string `json:"type"`
}

type imageContext struct {
	LanguageHints []string `json:"languageHints,omitempty"`
}

type annotateResponse struct {
	Responses []annotationResult `json:"responses"`
}

type annotationResult struct {
	FullTextAnnotation *textAnnotation    `json:"fullTextAnnotation"`
	TextAnnotations    []textAnnotation   `json:"textAnnotations"`
	Responses          []annotationResult `json:"responses"`
	Error              *apiError          `json:"error"`
}

type textAnnotation struct {
	Text        string `json:"text"`
	Description string `json:"description"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DetectText transcribes one document. An empty string with a nil error
// means the engine found no text, which downstream treats as a valid blank
// document.
func (c *Client) DetectText(ctx context.Context, data []byte, mimeType string) (string, error) {
	call := func(ctx context.Context) (string, error) {
		if mimeType == "application/pdf" {
			return c.annotateFile(ctx, data, mimeType)
		}
		return c.annotateImage(ctx, data)
	}

	var text string
	run := func(ctx context.Context) error {
		var err error
		text, err = call(ctx)
		return err
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "vision.annotate", run, classifyVisionError)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return "", wrapTemporaryIfNeeded("vision annotate", err)
	}
	return text, nil
}

func (c *Client) annotateImage(ctx context.Context, data []byte) (string, error) {
	request := annotateRequest{Requests: []annotation{{
		Image:        &imagePayload{Content: base64.StdEncoding.EncodeToString(data)},
		Features:     []feature{{Type: "DOCUMENT_TEXT_DETECTION"}},
		ImageContext: &imageContext{LanguageHints: c.langHints},
	}}}

	var response annotateResponse
	if err := c.postJSON(ctx, "/v1/images:annotate", request, &response, "images"); err != nil {
		return "", err
	}
	if len(response.Responses) == 0 {
		return "", nil
	}
	return transcript(response.Responses[0])
}

func (c *Client) annotateFile(ctx context.Context, data []byte, mimeType string) (string, error) {
	request := annotateRequest{Requests: []annotation{{
		InputConfig:  &inputConfig{Content: base64.StdEncoding.EncodeToString(data), MimeType: mimeType},
		Features:     []feature{{Type: "DOCUMENT_TEXT_DETECTION"}},
		ImageContext: &imageContext{LanguageHints: c.langHints},
	}}}

	var response annotateResponse
	if err := c.postJSON(ctx, "/v1/files:annotate", request, &response, "files"); err != nil {
		return "", err
	}

	var pages []string
	for _, fileResult := range response.Responses {
		if fileResult.Error != nil {
			return "", &APIResultError{Code: fileResult.Error.Code, Message: fileResult.Error.Message}
		}
		for _, page := range fileResult.Responses {
			text, err := transcript(page)
			if err != nil {
				return "", err
			}
			if text != "" {
				pages = append(pages, text)
			}
		}
	}
	return strings.Join(pages, "\n"), nil
}

func transcript(result annotationResult) (string, error) {
	if result.Error != nil {
		return "", &APIResultError{Code: result.Error.Code, Message: result.Error.Message}
	}
	if result.FullTextAnnotation != nil && result.FullTextAnnotation.Text != "" {
		return result.FullTextAnnotation.Text, nil
	}
	if len(result.TextAnnotations) > 0 {
		return result.TextAnnotations[0].Description, nil
	}
	return "", nil
}

// APIResultError is a per-document error reported inside an otherwise
// successful annotate response.
type APIResultError struct {
	Code    int
	Message string
}

func (e *APIResultError) Error() string {
	return fmt.Sprintf("vision result error %d: %s", e.Code, e.Message)
}
