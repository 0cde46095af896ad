// Package anki implements a client for the AnkiConnect JSON-over-HTTP API
// exposed by a locally running Anki instance. Every call sends an
// {action, version, params} envelope and receives a {result, error} reply.
package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/ankisync/internal/common"
)

// apiVersion is the AnkiConnect protocol version this client speaks.
const apiVersion = 6

// Client talks to a single AnkiConnect endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client for the given base URL. timeout bounds every
// request end to end; requests are never retried.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Note is the payload for a note creation request.
type Note struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Tags      []string          `json:"tags"`
}

// FieldValue is one field of an existing note as returned by notesInfo.
type FieldValue struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// NoteInfo is the detail record for an existing note.
type NoteInfo struct {
	NoteID    int64                 `json:"noteId"`
	ModelName string                `json:"modelName"`
	Fields    map[string]FieldValue `json:"fields"`
	Tags      []string              `json:"tags"`
}

type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// call posts one envelope and decodes the result into out (if non-nil).
// A transport failure, non-2xx status, undecodable body, or non-null error
// field all count as a failed call.
func (c *Client) call(ctx context.Context, action string, params any, out any) error {
	body, err := json.Marshal(request{Action: action, Version: apiVersion, Params: params})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request error: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s returned status %s: %w", action, resp.Status, common.ErrDelivery)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", action, err)
	}

	var r response
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", action, err)
	}
	if r.Error != nil {
		return fmt.Errorf("%s error from AnkiConnect: %s: %w", action, *r.Error, common.ErrDelivery)
	}

	if out != nil && len(r.Result) > 0 {
		if err := json.Unmarshal(r.Result, out); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", action, err)
		}
	}
	return nil
}

// Version performs the identification call used as the availability check.
func (c *Client) Version(ctx context.Context) (int, error) {
	var v int
	if err := c.call(ctx, "version", nil, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// FindNotes returns the ids of notes matching the given search query.
func (c *Client) FindNotes(ctx context.Context, query string) ([]int64, error) {
	var ids []int64
	params := map[string]any{"query": query}
	if err := c.call(ctx, "findNotes", params, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// NotesInfo fetches detail records for the given note ids.
func (c *Client) NotesInfo(ctx context.Context, ids []int64) ([]NoteInfo, error) {
	var infos []NoteInfo
	params := map[string]any{"notes": ids}
	if err := c.call(ctx, "notesInfo", params, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// AddNote creates a new note and returns its id.
func (c *Client) AddNote(ctx context.Context, note Note) (int64, error) {
	var id int64
	params := map[string]any{"note": note}
	if err := c.call(ctx, "addNote", params, &id); err != nil {
		return 0, err
	}
	return id, nil
}
