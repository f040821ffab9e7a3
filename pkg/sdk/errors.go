package photodex

import "fmt"

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("photodex: http %d", e.StatusCode)
	}
	return fmt.Sprintf("photodex: http %d: %s", e.StatusCode, e.Message)
}
