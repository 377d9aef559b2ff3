package bitable

import (
	"encoding/json"
	"fmt"

	"github.com/storefront/backend/internal/domain/shared"
)

// codeRecordNotFound is the envelope code the service returns for a
// missing record. It must stay distinguishable from other API errors so
// callers can map it to a 404.
const codeRecordNotFound = 254404

// envelope is the base response wrapper for all open-apis calls.
// A non-zero code is an application-level error even on HTTP 200.
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data,omitempty"`
}

// IsSuccess returns true if the response indicates success
func (e *envelope) IsSuccess() bool {
	return e.Code == 0
}

// APIError carries the application-level error code and message from a
// response envelope.
type APIError struct {
	Code int
	Msg  string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("bitable: %d - %s", e.Code, e.Msg)
}

// Unwrap maps the envelope code onto the shared error taxonomy so callers
// can match with errors.Is without inspecting codes.
func (e *APIError) Unwrap() error {
	if e.Code == codeRecordNotFound {
		return shared.ErrExternalNotFound
	}
	return shared.ErrExternalAPI
}

// tokenResponse is the response of the tenant token endpoint
type tokenResponse struct {
	Code              int    `json:"code"`
	Msg               string `json:"msg"`
	TenantAccessToken string `json:"tenant_access_token"`
}

// Record is one row of a table. Field values are dynamically typed: text
// fields arrive as arrays of rich-text spans, numbers as floats, and
// attachments as arrays of file descriptors.
type Record struct {
	RecordID string         `json:"record_id"`
	Fields   map[string]any `json:"fields"`
}

// FilterCondition is one condition of a search filter
type FilterCondition struct {
	FieldName string   `json:"field_name"`
	Operator  string   `json:"operator"`
	Value     []string `json:"value"`
}

// Filter combines conditions with a conjunction ("and" / "or")
type Filter struct {
	Conjunction string            `json:"conjunction"`
	Conditions  []FilterCondition `json:"conditions"`
}

// Sort orders search results by one field
type Sort struct {
	FieldName string `json:"field_name"`
	Desc      bool   `json:"desc"`
}

// SearchRequest is the body of a record search call. PageSize and
// PageToken travel as query parameters and are forwarded unchanged.
type SearchRequest struct {
	FieldNames []string `json:"field_names,omitempty"`
	Filter     *Filter  `json:"filter,omitempty"`
	Sort       []Sort   `json:"sort,omitempty"`
	PageSize   int      `json:"-"`
	PageToken  string   `json:"-"`
}

// SearchResult is one page of search results
type SearchResult struct {
	Items     []Record `json:"items"`
	HasMore   bool     `json:"has_more"`
	PageToken string   `json:"page_token"`
}

// recordData wraps a single record response
type recordData struct {
	Record Record `json:"record"`
}

// batchCreateRequest is the body of a batch record creation call
type batchCreateRequest struct {
	Records []RecordFields `json:"records"`
}

// RecordFields is the field map of one record to create
type RecordFields struct {
	Fields map[string]any `json:"fields"`
}

// batchCreateResult is the data of a batch creation response
type batchCreateResult struct {
	Records []Record `json:"records"`
}

// FieldOption is one option of a single/multi select field
type FieldOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color int    `json:"color"`
}

// FieldProperty holds the type-specific attributes of a field
type FieldProperty struct {
	Options []FieldOption `json:"options,omitempty"`
}

// Field is the schema metadata of one table column
type Field struct {
	FieldName string         `json:"field_name"`
	Type      int            `json:"type"`
	Property  *FieldProperty `json:"property,omitempty"`
}

// fieldListResult is the data of a field metadata listing
type fieldListResult struct {
	Items []Field `json:"items"`
}
