package browser

import (
	"encoding/json"
	"net/http"
)

// Response is the raw result of a request: status, headers and body bytes.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess checks if the response indicates success (2xx status code)
func (r *Response) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the JSON response body into v
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// String returns the response body as a string
func (r *Response) String() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}
