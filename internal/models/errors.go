package models

import (
	"fmt"
	"strings"
)

// NetworkError covers transport failures and non-success statuses while
// fetching the menu board photo. Fatal for the run.
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError is raised before any network call when none of the candidate
// credential variables is set.
type AuthError struct {
	Vars []string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("missing API credential: none of %s is set", strings.Join(e.Vars, ", "))
}

// UpstreamError is a service-side failure from a generative endpoint.
type UpstreamError struct {
	Service string
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s returned status %d: %s", e.Service, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

// ParseError carries an excerpt of the text that failed to parse as JSON.
type ParseError struct {
	Excerpt string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing menu JSON: %v\nraw response was: %s...", e.Err, e.Excerpt)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError means a weekday was present but not an object of categories.
type SchemaError struct {
	Day string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid menu structure for %s", e.Day)
}
