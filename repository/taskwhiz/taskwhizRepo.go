// Package taskwhizrepo is the gateway to the remote TaskWhiz API. It is
// the only package that talks to the network: one request per call, no
// retries, and callers decide what to do with the result.
package taskwhizrepo

import (
	"context"
	"fmt"
	"io"

	"github.com/chrysspegenia/taskwhiz/model"
)

type Credentials struct {
	Email    string
	Password string
}

// LoginResult carries the authenticated user from the response body and
// the opaque bearer token echoed in the Authorization response header.
type LoginResult struct {
	User  model.User
	Token string
}

type RegisterReq struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

type CompleteResetReq struct {
	Token                string
	Password             string
	PasswordConfirmation string
}

type ResetResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UpdateProfileReq updates the editable profile fields. Avatar is nil when
// the user picked no file; the multipart body then carries no avatar part
// and the server keeps the existing image.
type UpdateProfileReq struct {
	FirstName  string
	LastName   string
	AvatarName string
	Avatar     io.Reader
}

type Repo interface {
	Login(ctx context.Context, creds Credentials) (*LoginResult, error)
	Register(ctx context.Context, req RegisterReq) error
	RequestReset(ctx context.Context, email string) (*ResetResp, error)
	CompleteReset(ctx context.Context, req CompleteResetReq) (*ResetResp, error)
	Profile(ctx context.Context, token, userID string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, token, userID string, req UpdateProfileReq) error
}

// RequestError is a non-success HTTP status from the API. Message is the
// server body's "message" field when one could be decoded, else empty;
// call sites supply their own fallback copy.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("taskwhiz api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("taskwhiz api: status %d: %s", e.StatusCode, e.Message)
}
