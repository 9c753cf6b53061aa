package api

import (
	"context"
	"fmt"

	"github.com/agrilearn/agrilearn/internal/storage"
	"github.com/agrilearn/agrilearn/internal/validation"
)

// ArticleDraft is the form payload for creating or updating an
// article. Image may be nil for text-only updates.
type ArticleDraft struct {
	Title       string
	Description string
	CategoryID  string
	Image       *FilePart
}

func (d *ArticleDraft) validate() error {
	return validation.ValidateRequired(
		validation.Field{Name: "title", Value: d.Title},
		validation.Field{Name: "description", Value: d.Description},
	)
}

func (d *ArticleDraft) fields() map[string]string {
	return map[string]string{
		"title":             d.Title,
		"description":       d.Description,
		"categoryArtikelId": d.CategoryID,
	}
}

// ListArticles fetches the full article collection; filtering and
// paging happen client-side.
func (c *Client) ListArticles(ctx context.Context) ([]*storage.Article, error) {
	var articles []*storage.Article
	if err := c.getJSON(ctx, "/artikel", &articles); err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return articles, nil
}

func (c *Client) GetArticle(ctx context.Context, id string) (*storage.Article, error) {
	var article storage.Article
	if err := c.getJSON(ctx, "/artikel/"+id, &article); err != nil {
		return nil, fmt.Errorf("getting article %s: %w", id, err)
	}
	return &article, nil
}

func (c *Client) ListArticleCategories(ctx context.Context) ([]*storage.Category, error) {
	var cats []*storage.Category
	if err := c.getJSON(ctx, "/categoryArtikel", &cats); err != nil {
		return nil, fmt.Errorf("listing article categories: %w", err)
	}
	return cats, nil
}

func (c *Client) CreateArticle(ctx context.Context, draft ArticleDraft) (*storage.Article, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}

	var created storage.Article
	if err := c.sendMultipart(ctx, "POST", "/artikel", draft.fields(), draft.Image, &created); err != nil {
		return nil, fmt.Errorf("creating article: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateArticle(ctx context.Context, id string, draft ArticleDraft) (*storage.Article, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}

	var updated storage.Article
	if err := c.sendMultipart(ctx, "PUT", "/artikel/"+id, draft.fields(), draft.Image, &updated); err != nil {
		return nil, fmt.Errorf("updating article %s: %w", id, err)
	}
	return &updated, nil
}

func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/artikel/"+id); err != nil {
		return fmt.Errorf("deleting article %s: %w", id, err)
	}
	return nil
}
