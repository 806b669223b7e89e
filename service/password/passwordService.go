package passwordsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/chrysspegenia/taskwhiz/model"
	taskwhizrepo "github.com/chrysspegenia/taskwhiz/repository/taskwhiz"
)

var (
	ErrUnknownEmail = errors.New("email not recognized")
	ErrMissingToken = errors.New("reset token missing")
	ErrResetFailed  = errors.New("password reset rejected")
)

type Service interface {
	// RequestReset asks the API to mail reset instructions. The returned
	// string is the server's confirmation message, empty when it sent none.
	RequestReset(ctx context.Context, form model.ForgotPasswordForm) (string, error)
	CompleteReset(ctx context.Context, form model.ResetPasswordForm) error
}

type service struct {
	gw taskwhizrepo.Repo
	v  *validator.Validate
}

func New(gw taskwhizrepo.Repo, v *validator.Validate) Service {
	return &service{gw: gw, v: v}
}

func (s *service) RequestReset(ctx context.Context, form model.ForgotPasswordForm) (string, error) {
	form.Email = strings.TrimSpace(form.Email)

	if err := s.v.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return "", err
		}
		return "", &model.ValidationError{Fields: model.FieldErrors{
			"email": "Enter a valid email address.",
		}}
	}

	res, err := s.gw.RequestReset(ctx, form.Email)
	if err != nil {
		return "", rejection(ErrUnknownEmail, err)
	}
	return res.Message, nil
}

// CompleteReset finishes a reset with the opaque token lifted from the
// page URL. A missing token is terminal: no rules run and no call is made.
func (s *service) CompleteReset(ctx context.Context, form model.ResetPasswordForm) error {
	if form.Token == "" {
		return ErrMissingToken
	}

	if err := s.v.Struct(form); err != nil {
		return resetFieldErrors(err)
	}

	req := taskwhizrepo.CompleteResetReq{
		Token:                form.Token,
		Password:             form.Password,
		PasswordConfirmation: form.ConfirmPassword,
	}
	if _, err := s.gw.CompleteReset(ctx, req); err != nil {
		return rejection(ErrResetFailed, err)
	}
	return nil
}

// rejection wraps an API refusal in the given sentinel. Transport and
// decode failures pass through unchanged.
func rejection(sentinel, err error) error {
	var reqErr *taskwhizrepo.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	return err
}

func resetFieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := model.FieldErrors{}
	for _, fe := range verrs {
		switch fe.Field() {
		case "Password":
			fields["password"] = "Password does not meet the requirements."
		case "ConfirmPassword":
			fields["password_confirmation"] = "Passwords do not match."
		}
	}
	return &model.ValidationError{Fields: fields}
}
