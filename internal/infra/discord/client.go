// Package discord implements the notification sink and direct-message inbox
// over the Discord REST API.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultAPIBase is the production Discord REST endpoint.
const DefaultAPIBase = "https://discord.com/api/v10"

// threadTypePublic is the Discord channel type for public threads.
const threadTypePublic = 11

// client is a minimal Discord REST client. It covers only the calls the task
// board needs: posting messages, opening threads, and reading a channel.
type client struct {
	http    *http.Client
	apiBase string
	token   string
}

func newClient(token, apiBase string) *client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &client{
		http:    &http.Client{Timeout: 10 * time.Second},
		apiBase: apiBase,
		token:   token,
	}
}

// message is the subset of the Discord message object the board reads.
type message struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Author  struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Bot      bool   `json:"bot"`
	} `json:"author"`
}

// channel is the subset of the Discord channel object the board reads.
type channel struct {
	ID string `json:"id"`
}

func (c *client) createMessage(ctx context.Context, channelID, content string) (*message, error) {
	var msg message
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/messages", channelID),
		map[string]string{"content": content}, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *client) createThread(ctx context.Context, channelID, name string) (*channel, error) {
	var ch channel
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/threads", channelID),
		map[string]any{"name": name, "type": threadTypePublic}, &ch)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *client) listMessagesAfter(ctx context.Context, channelID, afterID string, limit int) ([]message, error) {
	q := url.Values{}
	if afterID != "" {
		q.Set("after", afterID)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))

	var msgs []message
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/channels/%s/messages?%s", channelID, q.Encode()), nil, &msgs)
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, data)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
