package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mkowalczyk/zus-accident-assistant/internal/core/domain"
)

// Client talks to the document-analysis backend. The base URL is explicit
// constructor input so tests can point separate clients at separate fake
// backends. The client performs no retries: a failed call surfaces as-is
// and retrying is a user decision one layer up.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Options struct {
	// Token, when set, is passed through unchanged as a bearer token.
	Token      string
	HTTPClient *http.Client
}

func New(baseURL string, options Options) *Client {
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      options.Token,
		httpClient: httpClient,
	}
}

// Trigger starts one analysis job: every file goes into a repeated "files"
// part and the per-document metadata into a "documents_meta" JSON field.
// Input documents are never mutated.
func (c *Client) Trigger(ctx context.Context, documents []domain.UploadedDocument) (domain.RunResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	meta := make([]domain.DocumentMeta, 0, len(documents))
	for _, doc := range documents {
		part, err := writer.CreateFormFile("files", doc.Name)
		if err != nil {
			return domain.RunResponse{}, fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(doc.Payload); err != nil {
			return domain.RunResponse{}, fmt.Errorf("write file part: %w", err)
		}
		meta = append(meta, doc.Meta())
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return domain.RunResponse{}, fmt.Errorf("marshal documents_meta: %w", err)
	}
	if err := writer.WriteField("documents_meta", string(metaJSON)); err != nil {
		return domain.RunResponse{}, fmt.Errorf("write documents_meta field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return domain.RunResponse{}, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pipeline/run", &body)
	if err != nil {
		return domain.RunResponse{}, fmt.Errorf("create run request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	var runResp domain.RunResponse
	if err := c.do(req, "run", &runResp); err != nil {
		return domain.RunResponse{}, err
	}
	validateResultPayload(runResp.CaseID, runResp.Result)
	return runResp, nil
}

// Status fetches one observation of a running job.
func (c *Client) Status(ctx context.Context, caseID string) (domain.StatusResponse, error) {
	path := fmt.Sprintf("/pipeline/case/%s/status", url.PathEscape(caseID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return domain.StatusResponse{}, fmt.Errorf("create status request: %w", err)
	}
	c.authorize(req)

	var statusResp domain.StatusResponse
	if err := c.do(req, "status", &statusResp); err != nil {
		return domain.StatusResponse{}, err
	}
	validateResultPayload(statusResp.CaseID, statusResp.Result)
	return statusResp, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) do(req *http.Request, operation string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pipeline %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newHTTPStatusError(operation, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

// HTTPStatusError is a non-2xx backend reply. Its message is the response
// body text verbatim when present, so the UI can show the server's own
// words; the HTTP status line is the fallback for an empty body.
type HTTPStatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func newHTTPStatusError(operation string, resp *http.Response) *HTTPStatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &HTTPStatusError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}

func (e *HTTPStatusError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("pipeline %s failed: %s", e.Operation, e.Status)
}
