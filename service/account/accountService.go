package accountsvc

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
	ErrInvalidCreds = errors.New("invalid credentials")
	ErrRegistration = errors.New("registration rejected")
)

type Service interface {
	Login(ctx context.Context, form model.LoginForm) (*model.User, string, error)
	Register(ctx context.Context, form model.RegisterForm) error
}

type service struct {
	gw taskwhizrepo.Repo
	v  *validator.Validate
}

func New(gw taskwhizrepo.Repo, v *validator.Validate) Service {
	return &service{gw: gw, v: v}
}

// Login runs one login attempt: required checks first, then exactly one
// gateway call. An API rejection collapses into ErrInvalidCreds; transport
// failures surface unwrapped. The session is never touched here.
func (s *service) Login(ctx context.Context, form model.LoginForm) (*model.User, string, error) {
	email := strings.TrimSpace(form.Email)
	password := strings.TrimSpace(form.Password)

	fields := model.FieldErrors{}
	if email == "" {
		fields["email"] = "Email is required."
	}
	if password == "" {
		fields["password"] = "Password is required."
	}
	if len(fields) > 0 {
		return nil, "", &model.ValidationError{Fields: fields}
	}

	res, err := s.gw.Login(ctx, taskwhizrepo.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, "", rejection(ErrInvalidCreds, err)
	}
	return &res.User, res.Token, nil
}

func (s *service) Register(ctx context.Context, form model.RegisterForm) error {
	form.Email = strings.TrimSpace(form.Email)
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)

	if err := s.v.Struct(form); err != nil {
		return registerFieldErrors(err)
	}

	req := taskwhizrepo.RegisterReq{
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Password:  form.Password,
	}
	if err := s.gw.Register(ctx, req); err != nil {
		return rejection(ErrRegistration, err)
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

func registerFieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := model.FieldErrors{}
	for _, fe := range verrs {
		switch fe.Field() {
		case "Email":
			fields["email"] = "Enter a valid email address."
		case "FirstName":
			fields["first_name"] = "First name must be at least 2 characters."
		case "LastName":
			fields["last_name"] = "Last name must be at least 2 characters."
		case "Password":
			fields["password"] = "Password does not meet the requirements."
		case "ConfirmPassword":
			fields["confirm_password"] = "Passwords do not match."
		}
	}
	return &model.ValidationError{Fields: fields}
}
