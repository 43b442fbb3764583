// Package client is the typed HTTP client for the document backend: the
// external collaborator that indexes uploads and answers queries over
// them. The visualization has no dependency on this package; the
// application shell composes both.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Document is one indexed upload as the backend reports it.
type Document struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       int64  `json:"size"`
	Chunks     int    `json:"chunks"`
	UploadedAt string `json:"uploaded_at"`
}

// Source is one retrieval hit backing a query response.
type Source struct {
	Document   string  `json:"document"`
	Score      float64 `json:"score"`
	ChunkIndex int     `json:"chunk_index"`
}

// QueryResult is the backend's answer with its supporting sources.
type QueryResult struct {
	Response   string   `json:"response"`
	Sources    []Source `json:"sources"`
	Confidence float64  `json:"confidence"`
}

// UploadResult reports an accepted upload batch.
type UploadResult struct {
	Success   bool       `json:"success"`
	Documents []Document `json:"documents"`
	Message   string     `json:"message"`
}

// Stats is the backend's corpus summary.
type Stats struct {
	TotalDocuments      int   `json:"total_documents"`
	TotalChunks         int   `json:"total_chunks"`
	TotalSize           int64 `json:"total_size"`
	VectorStoreSize     int   `json:"vector_store_size"`
	KnowledgeGraphNodes int   `json:"knowledge_graph_nodes"`
}

// GraphNode is one entity the backend extracted from the corpus. Size and
// color are visualization hints chosen server-side.
type GraphNode struct {
	ID          int     `json:"id"`
	Label       string  `json:"label"`
	Type        string  `json:"type"`
	Size        float64 `json:"size"`
	Color       string  `json:"color"`
	Connections int     `json:"connections"`
	Frequency   int     `json:"frequency"`
}

// GraphEdge links two nodes by index with a co-occurrence weight.
type GraphEdge struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Weight int `json:"weight"`
}

// KnowledgeGraph is the backend's entity graph over the indexed documents.
type KnowledgeGraph struct {
	Nodes          []GraphNode `json:"nodes"`
	Edges          []GraphEdge `json:"edges"`
	TotalEntities  int         `json:"total_entities"`
	TotalDocuments int         `json:"total_documents"`
}

// Client talks to one backend instance. Calls toward the backend are
// rate-limited so a chatty UI cannot flood the indexer.
type Client struct {
	base    string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a client for the given base URL. queriesPerSec bounds the
// request rate; values <= 0 fall back to one per second.
func New(baseURL string, timeout time.Duration, queriesPerSec float64) *Client {
	if queriesPerSec <= 0 {
		queriesPerSec = 1
	}
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(queriesPerSec), 2),
	}
}

// ListDocuments fetches every indexed document.
func (c *Client) ListDocuments(ctx context.Context) ([]Document, error) {
	var out struct {
		Documents []Document `json:"documents"`
		Total     int        `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, "/documents", nil, "", &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

// Query asks the backend a question over the indexed documents.
func (c *Client) Query(ctx context.Context, query string) (*QueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("client: empty query")
	}
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("client: encode query: %w", err)
	}
	var out QueryResult
	if err := c.do(ctx, http.MethodPost, "/query", bytes.NewReader(body), "application/json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload sends one file as a multipart batch for indexing.
func (c *Client) Upload(ctx context.Context, name string, content io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files", name)
	if err != nil {
		return nil, fmt.Errorf("client: multipart form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("client: read upload %s: %w", name, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("client: finish multipart: %w", err)
	}

	var out UploadResult
	if err := c.do(ctx, http.MethodPost, "/upload", &buf, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDocument removes one document from the index.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/documents/"+id, nil, "", nil)
}

// GetKnowledgeGraph fetches the entity graph built from the indexed
// documents.
func (c *Client) GetKnowledgeGraph(ctx context.Context) (*KnowledgeGraph, error) {
	var out KnowledgeGraph
	if err := c.do(ctx, http.MethodGet, "/knowledge-graph", nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStats fetches the corpus summary.
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("client: rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("client: build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("client: %s %s: %s", method, path, apiError(resp))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s %s response: %w", method, path, err)
	}
	return nil
}

// apiError extracts the backend's {"detail": ...} error payload, falling
// back to the HTTP status.
func apiError(resp *http.Response) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && json.Unmarshal(data, &payload) == nil && payload.Detail != "" {
		return payload.Detail
	}
	return resp.Status
}
