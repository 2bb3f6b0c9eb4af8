// Package unitrequests is the typed client for estate-unit purchase/viewing
// requests and their assignment to sales staff.
package unitrequests

import (
	"context"

	"github.com/aqarhub/go-admin-client/apiclient"
	"github.com/pkg/errors"
)

const basePath = "/v1/unitrequest"

// UnitRequest is an inbound request against an estate unit.
type UnitRequest struct {
	ID           string `json:"id,omitempty"`
	EstateUnitID string `json:"estateUnitId,omitempty"`
	CustomerName string `json:"customerName,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	SalesStaffID string `json:"salesStaffId,omitempty"`
	Status       int    `json:"status,omitempty"`
	CreatedOn    string `json:"createdOn,omitempty"`
}

// Page is one page of unit requests.
type Page struct {
	Requests   []UnitRequest
	TotalCount int
	TotalPages int
}

// Service talks to the unit-request endpoints.
type Service struct {
	api *apiclient.Client
}

// NewService creates a unit-request service over the given API client.
func NewService(api *apiclient.Client) (*Service, error) {
	if api == nil {
		return nil, errors.New("[unitrequests.NewService] api client is required")
	}
	return &Service{api: api}, nil
}

// Search returns a page of unit requests, newest first.
func (s *Service) Search(ctx context.Context, page, pageSize int) (*Page, error) {
	var resp apiclient.PagedResponse
	req := apiclient.SearchRequest{
		PageNumber: page,
		PageSize:   pageSize,
		OrderBy:    []string{"createdOn desc"},
	}
	if err := s.api.Post(ctx, basePath+"/search", req, &resp); err != nil {
		return nil, errors.Wrap(err, "[unitrequests.Search] search")
	}

	result := &Page{TotalCount: resp.TotalCount, TotalPages: resp.TotalPages}
	if err := resp.DecodeData(&result.Requests); err != nil {
		return nil, errors.Wrap(err, "[unitrequests.Search] decode data")
	}
	return result, nil
}

// Get fetches a single unit request.
func (s *Service) Get(ctx context.Context, id string) (*UnitRequest, error) {
	var request UnitRequest
	if err := s.api.Get(ctx, basePath+"/"+id, &request); err != nil {
		return nil, errors.Wrap(err, "[unitrequests.Get] get")
	}
	return &request, nil
}

// ForSalesStaff returns the requests assigned to one member of sales staff,
// the view backing the salesstaff route.
func (s *Service) ForSalesStaff(ctx context.Context, salesStaffID string) ([]UnitRequest, error) {
	body := map[string]string{"salesStaffId": salesStaffID}

	var resp apiclient.PagedResponse
	if err := s.api.Post(ctx, basePath+"/salesstaff", body, &resp); err != nil {
		return nil, errors.Wrap(err, "[unitrequests.ForSalesStaff] search")
	}

	var requests []UnitRequest
	if err := resp.DecodeData(&requests); err != nil {
		return nil, errors.Wrap(err, "[unitrequests.ForSalesStaff] decode data")
	}
	return requests, nil
}

// AssignSalesStaff hands a unit request to a member of sales staff.
func (s *Service) AssignSalesStaff(ctx context.Context, unitRequestID, salesStaffID string) error {
	body := map[string]string{
		"unitRequestId": unitRequestID,
		"salesStaffId":  salesStaffID,
	}
	return errors.Wrap(
		s.api.Post(ctx, basePath+"/"+unitRequestID+"/assign-sales", body, nil),
		"[unitrequests.AssignSalesStaff] assign",
	)
}

// UpdateStatus moves a unit request through its workflow.
func (s *Service) UpdateStatus(ctx context.Context, id string, status int) error {
	body := map[string]any{"id": id, "status": status}
	return errors.Wrap(
		s.api.Put(ctx, basePath+"/updateunitrequeststatus/"+id, body, nil),
		"[unitrequests.UpdateStatus] update status",
	)
}
