package profilesvc

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/chrysspegenia/taskwhiz/model"
	taskwhizrepo "github.com/chrysspegenia/taskwhiz/repository/taskwhiz"
)

type Service interface {
	Fetch(ctx context.Context, token, userID string) (*model.Profile, error)
	Update(ctx context.Context, token, userID string, form model.ProfileForm, avatarName string, avatar io.Reader) error
}

type service struct {
	gw taskwhizrepo.Repo
	v  *validator.Validate
}

func New(gw taskwhizrepo.Repo, v *validator.Validate) Service {
	return &service{gw: gw, v: v}
}

// Fetch issues the single profile read with the caller-supplied token and
// user id. No retry: a failure is rendered in place of the content.
func (s *service) Fetch(ctx context.Context, token, userID string) (*model.Profile, error) {
	return s.gw.Profile(ctx, token, userID)
}

// Update sends the two name fields and, only when one was chosen, the
// avatar file. A nil avatar leaves the server-side image untouched.
func (s *service) Update(ctx context.Context, token, userID string, form model.ProfileForm, avatarName string, avatar io.Reader) error {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)

	if err := s.v.Struct(form); err != nil {
		return profileFieldErrors(err)
	}

	req := taskwhizrepo.UpdateProfileReq{
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		AvatarName: avatarName,
		Avatar:     avatar,
	}
	return s.gw.UpdateProfile(ctx, token, userID, req)
}

func profileFieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := model.FieldErrors{}
	for _, fe := range verrs {
		switch fe.Field() {
		case "FirstName":
			fields["first_name"] = "First name is required."
		case "LastName":
			fields["last_name"] = "Last name is required."
		}
	}
	return &model.ValidationError{Fields: fields}
}
