package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/agrilearn/agrilearn/internal/storage"
	"github.com/agrilearn/agrilearn/internal/validation"
)

// ThreadDraft is a new forum discussion. Keywords is the raw
// comma-separated input; it is parsed and capped before submission.
type ThreadDraft struct {
	Title    string
	Content  string
	Keywords string
}

func (c *Client) ListThreads(ctx context.Context) ([]*storage.Thread, error) {
	var threads []*storage.Thread
	if err := c.getJSON(ctx, "/forum", &threads); err != nil {
		return nil, fmt.Errorf("listing threads: %w", err)
	}
	return threads, nil
}

// GetThread fetches one discussion including its replies.
func (c *Client) GetThread(ctx context.Context, id string) (*storage.Thread, error) {
	var thread storage.Thread
	if err := c.getJSON(ctx, "/forum/"+id, &thread); err != nil {
		return nil, fmt.Errorf("getting thread %s: %w", id, err)
	}
	return &thread, nil
}

func (c *Client) CreateThread(ctx context.Context, draft ThreadDraft) (*storage.Thread, error) {
	if err := validation.ValidateRequired(
		validation.Field{Name: "title", Value: draft.Title},
		validation.Field{Name: "content", Value: draft.Content},
	); err != nil {
		return nil, err
	}

	keywords, err := validation.ParseKeywords(draft.Keywords)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{
		"title":    draft.Title,
		"content":  draft.Content,
		"keywords": strings.Join(keywords, ","),
	}

	var created storage.Thread
	if err := c.sendMultipart(ctx, "POST", "/forum", fields, nil, &created); err != nil {
		return nil, fmt.Errorf("creating thread: %w", err)
	}
	return &created, nil
}

// ReplyToThread posts a reply; the API requires a logged-in user.
func (c *Client) ReplyToThread(ctx context.Context, threadID, content string) (*storage.Reply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("reply content is required")
	}

	payload := map[string]string{"content": content}
	var reply storage.Reply
	if err := c.postJSON(ctx, "/forum/"+threadID+"/reply", payload, &reply); err != nil {
		return nil, fmt.Errorf("replying to thread %s: %w", threadID, err)
	}
	return &reply, nil
}

func (c *Client) DeleteThread(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/forum/"+id); err != nil {
		return fmt.Errorf("deleting thread %s: %w", id, err)
	}
	return nil
}
