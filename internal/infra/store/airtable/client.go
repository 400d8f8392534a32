package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// Formulas mirror the two due-item query shapes: active leads with a
// past due timestamp, and open tasks with a past due timestamp.
const (
	dueLeadsFormula = "AND({status} != 'Unsub', {nextDue}, IS_BEFORE({nextDue}, NOW()))"
	dueTasksFormula = "AND({status} = 'open', {due}, IS_BEFORE({due}, NOW()))"
)

// Client is the low-level Airtable records API client for one base.
// LeadRepository and TaskRepository sit on top of it.
type Client struct {
	apiToken string
	baseURL  string
	http     *http.Client
}

func NewClient(apiToken, baseID string) *Client {
	return &Client{
		apiToken: apiToken,
		baseURL:  fmt.Sprintf("%s/%s", defaultBaseURL, baseID),
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) selectRecords(ctx context.Context, table, formula string, limit int) ([]record, error) {
	params := url.Values{}
	params.Set("filterByFormula", formula)
	params.Set("maxRecords", strconv.Itoa(limit))

	var page recordPage
	reqURL := fmt.Sprintf("%s?%s", c.tableURL(table), params.Encode())
	if err := c.do(ctx, http.MethodGet, reqURL, nil, &page); err != nil {
		return nil, err
	}
	return page.Records, nil
}

func (c *Client) createRecord(ctx context.Context, table string, fields map[string]any) (record, error) {
	var rec record
	err := c.do(ctx, http.MethodPost, c.tableURL(table), createRequest{Fields: fields}, &rec)
	return rec, err
}

func (c *Client) updateRecord(ctx context.Context, table, id string, fields map[string]any) error {
	reqURL := fmt.Sprintf("%s/%s", c.tableURL(table), id)
	return c.do(ctx, http.MethodPatch, reqURL, createRequest{Fields: fields}, nil)
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(table))
}

func (c *Client) do(ctx context.Context, method, reqURL string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal airtable payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("airtable %s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("airtable %s returned %d: %s", method, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode airtable response: %w", err)
		}
	}
	return nil
}

func escapeFormulaValue(v string) string {
	return strings.ReplaceAll(v, "'", `\'`)
}
