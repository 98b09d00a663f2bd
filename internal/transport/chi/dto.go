package chi

import "github.com/kailas-cloud/advsearch/internal/domain/bundle"

// ErrorResponseCode is a machine readable error code.
type ErrorResponseCode string

// Error codes returned by the API.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized     ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeStoreUnavailable ErrorResponseCode = "store_unavailable"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SearchRequestDTO describes the search request the host is rendering.
// When Params is omitted the parameters are taken from the URL query.
type SearchRequestDTO struct {
	URL    string            `json:"url"`
	Params map[string]string `json:"params,omitempty"`
}

// UserDTO identifies the requesting actor.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Named bool   `json:"named"`
}

// PrependRequest is the body of POST /hooks/search-results-prepend.
type PrependRequest struct {
	Request SearchRequestDTO `json:"request"`
	User    UserDTO          `json:"user"`
	Lang    string           `json:"lang,omitempty"`
}

// PrependResponse tells the host what to add to the search-results page.
type PrependResponse struct {
	Active       bool          `json:"active"`
	HTML         string        `json:"html,omitempty"`
	Modules      []string      `json:"modules,omitempty"`
	ModuleStyles []string      `json:"module_styles,omitempty"`
	ConfigVars   bundle.Bundle `json:"config_vars,omitempty"`
}

// PreferenceDTO is one entry of GET /preferences.
type PreferenceDTO struct {
	Key          string `json:"key"`
	Type         string `json:"type"`
	LabelMessage string `json:"label-message"`
	Section      string `json:"section"`
	HelpMessage  string `json:"help-message"`
}

// PreferencesResponse is the body of GET /preferences.
type PreferencesResponse struct {
	Items []PreferenceDTO `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}
