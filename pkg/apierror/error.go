package apierror

import "fmt"

// RemoteError describes a failed call to a marketplace (or vendor) endpoint:
// a non-2xx status, with enough context to tell which side rejected what.
type RemoteError struct {
	Marketplace string
	Endpoint    string
	StatusCode  int
	Body        string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: %s: unexpected status %d: %s", e.Marketplace, e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %s: unexpected status %d", e.Marketplace, e.Endpoint, e.StatusCode)
}

// New creates a RemoteError, truncating the response body to keep logs sane.
func New(marketplace, endpoint string, statusCode int, body []byte) *RemoteError {
	const maxBody = 512
	snippet := string(body)
	if len(snippet) > maxBody {
		snippet = snippet[:maxBody]
	}
	return &RemoteError{
		Marketplace: marketplace,
		Endpoint:    endpoint,
		StatusCode:  statusCode,
		Body:        snippet,
	}
}
