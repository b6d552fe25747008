package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/paanihub/paanictl/internal/models"
)

func (c *Client) FetchProfile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodGet, "/api/employee/user-profile", nil, nil, &profile); err != nil {
		return nil, err
	}
	if profile.Role == "" {
		profile.Role = models.RoleUser
	}
	return &profile, nil
}

// UpdateRole persists a role switch. The caller must not mutate local
// state until this returns nil.
func (c *Client) UpdateRole(ctx context.Context, role string) error {
	body := map[string]string{"role": role}
	return c.do(ctx, http.MethodPut, "/api/employee/update-profile", nil, body, nil)
}

// UpdateProfile submits edited profile fields as a multipart form, the
// shape the backend's update endpoint expects because the picture may be
// a locally-selected file pending upload.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]string, picture io.Reader, pictureName string) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}
	if picture != nil {
		part, err := form.CreateFormFile("picture", pictureName)
		if err != nil {
			return fmt.Errorf("failed to add picture to form: %w", err)
		}
		if _, err := io.Copy(part, picture); err != nil {
			return fmt.Errorf("failed to copy picture into form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("failed to finalise form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/employee/update-profile", &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("profile update failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}
	return nil
}
