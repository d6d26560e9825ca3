package routes

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/common/log"

	"github.com/polaroidwall/polaroidwall/pkg/models"
	"github.com/polaroidwall/polaroidwall/pkg/server/api/chain"
	"github.com/polaroidwall/polaroidwall/pkg/server/api/middleware"
	"github.com/polaroidwall/polaroidwall/pkg/storage"
)

func NewFakeLogger() (log.Logger, *bytes.Buffer) {
	var buffer bytes.Buffer
	return log.NewLogger(&buffer), &buffer
}

type FakePolaroidStore struct {
	_Create  func(models.Polaroid) (models.Polaroid, error)
	_List    func() ([]models.Polaroid, error)
	_Update  func(string, models.PolaroidUpdate) (models.Polaroid, error)
	_Destroy func(string) (models.Polaroid, error)
}

func (s FakePolaroidStore) Create(ctx context.Context, polaroid models.Polaroid) (models.Polaroid, error) {
	return s._Create(polaroid)
}

func (s FakePolaroidStore) List(ctx context.Context) ([]models.Polaroid, error) {
	return s._List()
}

func (s FakePolaroidStore) Update(ctx context.Context, id string, update models.PolaroidUpdate) (models.Polaroid, error) {
	return s._Update(id, update)
}

func (s FakePolaroidStore) Destroy(ctx context.Context, id string) (models.Polaroid, error) {
	return s._Destroy(id)
}

type FakeStorage struct {
	_Save   func(r io.Reader, originalName string) (string, error)
	_Remove func(image string) error
	_List   func() ([]storage.File, error)
}

func (s FakeStorage) Save(ctx context.Context, r io.Reader, originalName string) (string, error) {
	return s._Save(r, originalName)
}

func (s FakeStorage) Remove(ctx context.Context, image string) error {
	return s._Remove(image)
}

func (s FakeStorage) List(ctx context.Context) ([]storage.File, error) {
	return s._List()
}

type FakeErrorHandler struct {
	Error error
}

func (f *FakeErrorHandler) Handle(h chain.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		f.Error = err
	}
}

// This function is used in tests to construct an HTTP request, response
// recorder and a fake logger
func createRequest(t *testing.T, method string, path string, body io.Reader) (*http.Request, *httptest.ResponseRecorder, *bytes.Buffer) {
	recorder := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatal(err)
	}

	logger, output := NewFakeLogger()
	req = req.WithContext(context.WithValue(req.Context(), middleware.LoggerKey, &logger))
	return req, recorder, output
}
