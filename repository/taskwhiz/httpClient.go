package taskwhizrepo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/chrysspegenia/taskwhiz/model"
	"github.com/chrysspegenia/taskwhiz/util/httpx"
)

type httpRepo struct {
	baseURL string
	client  *http.Client
}

func NewHTTP(baseURL string) Repo {
	return &httpRepo{baseURL: strings.TrimRight(baseURL, "/"), client: httpx.Client()}
}

func (r *httpRepo) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	body := map[string]any{
		"user": map[string]any{
			"email":    creds.Email,
			"password": creds.Password,
		},
	}
	resp, err := r.doJSON(ctx, http.MethodPost, "/login", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, failure(resp)
	}

	var out struct {
		User model.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.User.ID == 0 {
		return nil, errors.New("taskwhiz: login response missing user")
	}

	return &LoginResult{User: out.User, Token: resp.Header.Get("Authorization")}, nil
}

func (r *httpRepo) Register(ctx context.Context, req RegisterReq) error {
	body := map[string]any{
		"user": map[string]any{
			"email":      req.Email,
			"first_name": req.FirstName,
			"last_name":  req.LastName,
			"password":   req.Password,
		},
	}
	resp, err := r.doJSON(ctx, http.MethodPost, "/signup", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return failure(resp)
	}
	return nil
}

func (r *httpRepo) RequestReset(ctx context.Context, email string) (*ResetResp, error) {
	body := map[string]any{
		"user": map[string]any{"email": email},
	}
	resp, err := r.doJSON(ctx, http.MethodPost, "/password", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, failure(resp)
	}

	var out ResetResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *httpRepo) CompleteReset(ctx context.Context, req CompleteResetReq) (*ResetResp, error) {
	body := map[string]any{
		"user": map[string]any{
			"reset_password_token":  req.Token,
			"password":              req.Password,
			"password_confirmation": req.PasswordConfirmation,
		},
	}
	resp, err := r.doJSON(ctx, http.MethodPatch, "/password", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, failure(resp)
	}

	var out ResetResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *httpRepo) Profile(ctx context.Context, token, userID string) (*model.Profile, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/users/"+userID, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", token)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, failure(resp)
	}

	var out model.Profile
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *httpRepo) UpdateProfile(ctx context.Context, token, userID string, req UpdateProfileReq) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("user[first_name]", req.FirstName); err != nil {
		return err
	}
	if err := w.WriteField("user[last_name]", req.LastName); err != nil {
		return err
	}
	if req.Avatar != nil {
		fw, err := w.CreateFormFile("user[avatar]", req.AvatarName)
		if err != nil {
			return err
		}
		if _, err := io.Copy(fw, req.Avatar); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPatch, r.baseURL+"/users/"+userID, &buf)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", token)
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return failure(resp)
	}
	return nil
}

func (r *httpRepo) doJSON(ctx context.Context, method, path string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return r.client.Do(httpReq)
}

// failure drains a non-2xx response into a RequestError. The body's shape
// is never trusted: decode errors just leave Message empty.
func failure(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	msg := ""
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		msg = body.Message
	}
	return &RequestError{StatusCode: resp.StatusCode, Message: msg}
}
