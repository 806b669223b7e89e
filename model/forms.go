package model

// LoginForm carries one login attempt. Required checks are done in the
// account service so the per-field messages match the page copy.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// RegisterForm is the registration payload. strongpw and emailshape are
// custom tags registered in app/echoServer/validation.
type RegisterForm struct {
	Email           string `form:"email" validate:"required,emailshape"`
	FirstName       string `form:"first_name" validate:"required,min=2"`
	LastName        string `form:"last_name" validate:"required,min=2"`
	Password        string `form:"password" validate:"required,strongpw"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// ForgotPasswordForm asks the API to mail a reset link.
type ForgotPasswordForm struct {
	Email string `form:"email" validate:"required,emailshape"`
}

// ResetPasswordForm completes a reset. Token is the opaque
// reset_password_token lifted from the page URL and passed through as-is.
type ResetPasswordForm struct {
	Token           string `form:"reset_password_token"`
	Password        string `form:"password" validate:"required,strongpw"`
	ConfirmPassword string `form:"password_confirmation" validate:"required,eqfield=Password"`
}

// ProfileForm updates the two editable name fields. The optional avatar
// upload travels beside the form, not in it.
type ProfileForm struct {
	FirstName string `form:"first_name" validate:"required"`
	LastName  string `form:"last_name" validate:"required"`
}

// FieldErrors maps a form field name to its inline error message.
type FieldErrors map[string]string

// ValidationError is returned by the workflow services when local rules
// fail. No network call has been made when it is returned.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string { return "validation failed" }
