package api

import (
	"context"
	"fmt"

	"github.com/agrilearn/agrilearn/internal/storage"
	"github.com/agrilearn/agrilearn/internal/validation"
)

type VideoDraft struct {
	Title       string
	Description string
	URL         string
	CategoryID  string
}

func (d *VideoDraft) validate() error {
	return validation.ValidateRequired(
		validation.Field{Name: "title", Value: d.Title},
		validation.Field{Name: "url", Value: d.URL},
	)
}

func (d *VideoDraft) fields() map[string]string {
	return map[string]string{
		"title":           d.Title,
		"description":     d.Description,
		"url":             d.URL,
		"categoryVideoId": d.CategoryID,
	}
}

func (c *Client) ListVideos(ctx context.Context) ([]*storage.Video, error) {
	var videos []*storage.Video
	if err := c.getJSON(ctx, "/videoTutorial", &videos); err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	return videos, nil
}

func (c *Client) GetVideo(ctx context.Context, id string) (*storage.Video, error) {
	var video storage.Video
	if err := c.getJSON(ctx, "/videoTutorial/"+id, &video); err != nil {
		return nil, fmt.Errorf("getting video %s: %w", id, err)
	}
	return &video, nil
}

func (c *Client) ListVideoCategories(ctx context.Context) ([]*storage.Category, error) {
	var cats []*storage.Category
	if err := c.getJSON(ctx, "/categoryVideo", &cats); err != nil {
		return nil, fmt.Errorf("listing video categories: %w", err)
	}
	return cats, nil
}

func (c *Client) CreateVideo(ctx context.Context, draft VideoDraft) (*storage.Video, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}

	var created storage.Video
	if err := c.sendMultipart(ctx, "POST", "/videoTutorial", draft.fields(), nil, &created); err != nil {
		return nil, fmt.Errorf("creating video: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateVideo(ctx context.Context, id string, draft VideoDraft) (*storage.Video, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}

	var updated storage.Video
	if err := c.sendMultipart(ctx, "PUT", "/videoTutorial/"+id, draft.fields(), nil, &updated); err != nil {
		return nil, fmt.Errorf("updating video %s: %w", id, err)
	}
	return &updated, nil
}

func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/videoTutorial/"+id); err != nil {
		return fmt.Errorf("deleting video %s: %w", id, err)
	}
	return nil
}
