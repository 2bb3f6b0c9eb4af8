// Package consultations is the typed client for consultations and the
// consultation-request queue worked by consultative staff.
package consultations

import (
	"context"

	"github.com/aqarhub/go-admin-client/apiclient"
	"github.com/pkg/errors"
)

const (
	basePath        = "/v1/consultation"
	requestBasePath = "/v1/consultationrequest"
)

// Consultation is a consultancy offering in both languages.
type Consultation struct {
	ID            string   `json:"id,omitempty"`
	NameAr        string   `json:"nameAr"`
	NameEn        string   `json:"nameEn"`
	BriefAr       string   `json:"briefAr"`
	BriefEn       string   `json:"briefEn"`
	DescriptionAr string   `json:"descriptionAr"`
	DescriptionEn string   `json:"descriptionEn"`
	DetailsAr     []string `json:"detailsAr,omitempty"`
	DetailsEn     []string `json:"detailsEn,omitempty"`
	ImagePath     string   `json:"imagePath,omitempty"`
	CreatedOn     string   `json:"createdOn,omitempty"`
}

// Request is an inbound consultation request from a site visitor.
type Request struct {
	ID                 string `json:"id,omitempty"`
	ConsultationID     string `json:"consultationId"`
	ConsultationNameAr string `json:"consultationNameAr,omitempty"`
	ConsultationNameEn string `json:"consultationNameEn,omitempty"`
	CustomerName       string `json:"customerName,omitempty"`
	PhoneNumber        string `json:"phoneNumber,omitempty"`
	Status             int    `json:"status,omitempty"`
	CreatedOn          string `json:"createdOn,omitempty"`
}

// RequestFilters narrows a consultation-request search.
type RequestFilters struct {
	SearchQuery    string
	Status         int
	ConsultationID string
}

// RequestPage is one page of consultation requests.
type RequestPage struct {
	Requests   []Request
	TotalCount int
	TotalPages int
}

// Service talks to the consultation endpoints.
type Service struct {
	api *apiclient.Client
}

// NewService creates a consultation service over the given API client.
func NewService(api *apiclient.Client) (*Service, error) {
	if api == nil {
		return nil, errors.New("[consultations.NewService] api client is required")
	}
	return &Service{api: api}, nil
}

// List returns a page of consultations, newest first.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]Consultation, error) {
	var resp apiclient.PagedResponse
	req := apiclient.SearchRequest{
		PageNumber: page,
		PageSize:   pageSize,
		OrderBy:    []string{"createdOn desc"},
	}
	if err := s.api.Post(ctx, basePath+"/search", req, &resp); err != nil {
		return nil, errors.Wrap(err, "[consultations.List] search")
	}

	var consultations []Consultation
	if err := resp.DecodeData(&consultations); err != nil {
		return nil, errors.Wrap(err, "[consultations.List] decode data")
	}
	return consultations, nil
}

// Get fetches a single consultation.
func (s *Service) Get(ctx context.Context, id string) (*Consultation, error) {
	var consultation Consultation
	if err := s.api.Get(ctx, basePath+"/"+id, &consultation); err != nil {
		return nil, errors.Wrap(err, "[consultations.Get] get")
	}
	return &consultation, nil
}

// searchRequestBody extends the shared envelope with request-queue filters.
type searchRequestBody struct {
	apiclient.SearchRequest
	Status         int    `json:"status,omitempty"`
	ConsultationID string `json:"consultationId,omitempty"`
}

// SearchRequests returns a filtered page of the consultation-request queue.
func (s *Service) SearchRequests(ctx context.Context, page, pageSize int, filters RequestFilters) (*RequestPage, error) {
	body := searchRequestBody{
		SearchRequest: apiclient.SearchRequest{
			PageNumber: page,
			PageSize:   pageSize,
			OrderBy:    []string{"createdOn desc"},
		},
		Status:         filters.Status,
		ConsultationID: filters.ConsultationID,
	}
	if filters.SearchQuery != "" {
		body.AdvancedSearch = &apiclient.AdvancedSearch{
			Fields:  []string{"consultationNameEn", "consultationNameAr"},
			Keyword: filters.SearchQuery,
		}
	}

	var resp apiclient.PagedResponse
	if err := s.api.Post(ctx, requestBasePath+"/search", body, &resp); err != nil {
		return nil, errors.Wrap(err, "[consultations.SearchRequests] search")
	}

	result := &RequestPage{TotalCount: resp.TotalCount, TotalPages: resp.TotalPages}
	if err := resp.DecodeData(&result.Requests); err != nil {
		return nil, errors.Wrap(err, "[consultations.SearchRequests] decode data")
	}
	return result, nil
}

// UpdateRequestStatus moves a consultation request through its workflow.
func (s *Service) UpdateRequestStatus(ctx context.Context, id string, status int) error {
	body := map[string]any{"id": id, "status": status}
	return errors.Wrap(
		s.api.Put(ctx, requestBasePath+"/"+id+"/status", body, nil),
		"[consultations.UpdateRequestStatus] update status",
	)
}
