package gqlclient

import "strings"

// Well-known backend error codes.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeBadInput        = "BAD_USER_INPUT"
)

// ErrorEntry is one element of a GraphQL errors array.
type ErrorEntry struct {
	Message string
	Path    []string
	Code    string
}

// ResponseError wraps the errors array of a GraphQL response. The transport
// call itself succeeded; the operation did not.
type ResponseError struct {
	Errors []ErrorEntry
}

func (e *ResponseError) Error() string {
	if len(e.Errors) == 0 {
		return "graphql: unknown error"
	}
	msgs := make([]string, len(e.Errors))
	for i, entry := range e.Errors {
		msgs[i] = entry.Message
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

// HasCode reports whether any entry carries the given extensions code.
func (e *ResponseError) HasCode(code string) bool {
	for _, entry := range e.Errors {
		if entry.Code == code {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is a GraphQL not-found error.
func IsNotFound(err error) bool {
	respErr, ok := err.(*ResponseError)
	return ok && respErr.HasCode(CodeNotFound)
}

// IsUnauthenticated reports whether err is a GraphQL authentication error.
func IsUnauthenticated(err error) bool {
	respErr, ok := err.(*ResponseError)
	return ok && respErr.HasCode(CodeUnauthenticated)
}
