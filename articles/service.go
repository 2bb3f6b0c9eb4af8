// Package articles is the typed client for the backend's article surface.
package articles

import (
	"context"

	"github.com/aqarhub/go-admin-client/apiclient"
	"github.com/pkg/errors"
)

const basePath = "/v1/article"

// Article is a published content article in both languages.
type Article struct {
	ID         string `json:"id,omitempty"`
	TitleAr    string `json:"titleAr"`
	BodyAr     string `json:"bodyAr"`
	TitleEn    string `json:"titleEn"`
	BodyEn     string `json:"bodyEn"`
	Order      int    `json:"order"`
	CategoryID string `json:"categoryId"`
	ImagePath  string `json:"imagePath,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// Image is a base64-encoded upload attached to a create or update.
type Image struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Data      string `json:"data"`
}

// FormData is the create/update payload.
type FormData struct {
	ID         string `json:"id,omitempty"`
	TitleAr    string `json:"titleAr"`
	BodyAr     string `json:"bodyAr"`
	TitleEn    string `json:"titleEn"`
	BodyEn     string `json:"bodyEn"`
	Order      int    `json:"order"`
	CategoryID string `json:"categoryId"`
	Image      *Image `json:"image,omitempty"`
}

// Page is one page of search results.
type Page struct {
	Articles   []Article
	TotalCount int
	TotalPages int
}

// Service talks to the article endpoints.
type Service struct {
	api *apiclient.Client
}

// NewService creates an article service over the given API client.
func NewService(api *apiclient.Client) (*Service, error) {
	if api == nil {
		return nil, errors.New("[articles.NewService] api client is required")
	}
	return &Service{api: api}, nil
}

// Search returns a page of articles, newest first.
func (s *Service) Search(ctx context.Context, page, pageSize int) (*Page, error) {
	var resp apiclient.PagedResponse
	req := apiclient.SearchRequest{
		PageNumber: page,
		PageSize:   pageSize,
		OrderBy:    []string{"createdOn desc"},
	}
	if err := s.api.Post(ctx, basePath+"/search", req, &resp); err != nil {
		return nil, errors.Wrap(err, "[articles.Search] search")
	}

	result := &Page{TotalCount: resp.TotalCount, TotalPages: resp.TotalPages}
	if err := resp.DecodeData(&result.Articles); err != nil {
		return nil, errors.Wrap(err, "[articles.Search] decode data")
	}
	return result, nil
}

// Get fetches a single article.
func (s *Service) Get(ctx context.Context, id string) (*Article, error) {
	var article Article
	if err := s.api.Get(ctx, basePath+"/"+id, &article); err != nil {
		return nil, errors.Wrap(err, "[articles.Get] get")
	}
	return &article, nil
}

// Create adds a new article.
func (s *Service) Create(ctx context.Context, form FormData) error {
	return errors.Wrap(s.api.Post(ctx, basePath, form, nil), "[articles.Create] create")
}

// Update replaces an existing article.
func (s *Service) Update(ctx context.Context, id string, form FormData) error {
	return errors.Wrap(s.api.Put(ctx, basePath+"/"+id, form, nil), "[articles.Update] update")
}

// Delete removes an article.
func (s *Service) Delete(ctx context.Context, id string) error {
	return errors.Wrap(s.api.Delete(ctx, basePath+"/"+id), "[articles.Delete] delete")
}
