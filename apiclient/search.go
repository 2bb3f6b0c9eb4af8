package apiclient

import "encoding/json"

// SearchRequest is the backend's paged-search envelope, shared by every
// search endpoint under /v1.
type SearchRequest struct {
	PageNumber     int             `json:"pageNumber,omitempty"`
	PageSize       int             `json:"pageSize,omitempty"`
	OrderBy        []string        `json:"orderBy,omitempty"`
	AdvancedSearch *AdvancedSearch `json:"advancedSearch,omitempty"`
}

// AdvancedSearch restricts a keyword search to named fields.
type AdvancedSearch struct {
	Fields  []string `json:"fields"`
	Keyword string   `json:"keyword"`
}

// PagedResponse is the backend's paged-search result envelope. Data stays raw
// so each service client can decode its own element type.
type PagedResponse struct {
	Data        json.RawMessage `json:"data"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
	TotalCount  int             `json:"totalCount"`
	PageSize    int             `json:"pageSize"`
	HasNextPage bool            `json:"hasNextPage"`
}

// DecodeData unmarshals the page's element slice into out.
func (p *PagedResponse) DecodeData(out any) error {
	if len(p.Data) == 0 {
		return nil
	}
	return json.Unmarshal(p.Data, out)
}
