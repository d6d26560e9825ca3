package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/polaroidwall/polaroidwall/pkg/models"
	"github.com/polaroidwall/polaroidwall/pkg/server/api"
	"github.com/polaroidwall/polaroidwall/pkg/server/api/middleware"
	"github.com/polaroidwall/polaroidwall/pkg/server/api/routes"
	"github.com/polaroidwall/polaroidwall/pkg/version"
)

// Client represents the client for a polaroids server
type Client struct {
	// The URL of the polaroids server
	// e.g. "http://localhost:5000"
	URL string
	// Defaults to http.DefaultClient
	HTTPClient *http.Client
}

// PolaroidsClient defines the API that a polaroids client conforms to
type PolaroidsClient interface {
	ListPolaroids(ctx context.Context) ([]models.Polaroid, error)
	CreatePolaroid(ctx context.Context, image Upload, caption, date string) (models.Polaroid, error)
	UpdatePolaroid(ctx context.Context, id string, update models.PolaroidUpdate) (models.Polaroid, error)
	DestroyPolaroid(ctx context.Context, id string) error
}

// Upload is an image file to be sent with a create request
type Upload struct {
	Filename string
	Content  io.Reader
}

// Error is a non-2xx response from the server
type Error struct {
	StatusCode int
	Title      string
	Detail     string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s (%s)", e.Title, e.Detail)
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	apiErr, ok := errors.Cause(err).(Error)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

func (c Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, c.URL+path, body)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(middleware.VersionHeader, version.Version)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return httpClient.Do(req)
}

// ListPolaroids returns every polaroid in server order
func (c Client) ListPolaroids(ctx context.Context) ([]models.Polaroid, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/polaroids", "", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list polaroids")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}

	polaroids := []models.Polaroid{}
	err = json.NewDecoder(resp.Body).Decode(&polaroids)
	return polaroids, errors.Wrap(err, "failed to decode polaroids")
}

// CreatePolaroid uploads an image together with its caption and date
func (c Client) CreatePolaroid(ctx context.Context, image Upload, caption, date string) (models.Polaroid, error) {
	var polaroid models.Polaroid

	var payload bytes.Buffer
	writer := multipart.NewWriter(&payload)

	part, err := writer.CreateFormFile(routes.ImageField, filepath.Base(image.Filename))
	if err != nil {
		return polaroid, err
	}
	if _, err := io.Copy(part, image.Content); err != nil {
		return polaroid, errors.Wrap(err, "failed to read image")
	}
	for _, field := range []struct{ name, value string }{{"caption", caption}, {"date", date}} {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return polaroid, err
		}
	}
	if err := writer.Close(); err != nil {
		return polaroid, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/polaroids", writer.FormDataContentType(), &payload)
	if err != nil {
		return polaroid, errors.Wrap(err, "failed to create polaroid")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return polaroid, parseError(resp)
	}

	err = json.NewDecoder(resp.Body).Decode(&polaroid)
	return polaroid, errors.Wrap(err, "failed to decode polaroid")
}

// UpdatePolaroid changes the caption and/or date of a polaroid. Nil fields are
// left unchanged by the server.
func (c Client) UpdatePolaroid(ctx context.Context, id string, update models.PolaroidUpdate) (models.Polaroid, error) {
	var polaroid models.Polaroid

	var payload bytes.Buffer
	if err := json.NewEncoder(&payload).Encode(update); err != nil {
		return polaroid, err
	}

	resp, err := c.do(ctx, http.MethodPut, "/api/polaroids/"+url.PathEscape(id), "application/json", &payload)
	if err != nil {
		return polaroid, errors.Wrapf(err, "failed to update polaroid %s", id)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return polaroid, parseError(resp)
	}

	err = json.NewDecoder(resp.Body).Decode(&polaroid)
	return polaroid, errors.Wrap(err, "failed to decode polaroid")
}

// DestroyPolaroid deletes a polaroid and its image
func (c Client) DestroyPolaroid(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/polaroids/"+url.PathEscape(id), "", nil)
	if err != nil {
		return errors.Wrapf(err, "failed to destroy polaroid %s", id)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return parseError(resp)
	}

	return nil
}

// parseError converts an API error response into an Error. Bodies that are
// not API errors are kept verbatim as the detail.
func parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read error response")
	}

	var apiError api.Error
	if err := json.Unmarshal(body, &apiError); err != nil || apiError.Title == "" {
		return Error{
			StatusCode: resp.StatusCode,
			Title:      http.StatusText(resp.StatusCode),
			Detail:     string(bytes.TrimSpace(body)),
		}
	}

	return Error{
		StatusCode: resp.StatusCode,
		Title:      apiError.Title,
		Detail:     apiError.Detail,
	}
}
