package album

import (
	"context"
	"sync"

	"github.com/polaroidwall/polaroidwall/pkg/client"
	"github.com/polaroidwall/polaroidwall/pkg/models"
)

type FakeClient struct {
	_ListPolaroids   func() ([]models.Polaroid, error)
	_CreatePolaroid  func(image client.Upload, caption, date string) (models.Polaroid, error)
	_UpdatePolaroid  func(id string, update models.PolaroidUpdate) (models.Polaroid, error)
	_DestroyPolaroid func(id string) error
}

func (c FakeClient) ListPolaroids(ctx context.Context) ([]models.Polaroid, error) {
	return c._ListPolaroids()
}

func (c FakeClient) CreatePolaroid(ctx context.Context, image client.Upload, caption, date string) (models.Polaroid, error) {
	return c._CreatePolaroid(image, caption, date)
}

func (c FakeClient) UpdatePolaroid(ctx context.Context, id string, update models.PolaroidUpdate) (models.Polaroid, error) {
	return c._UpdatePolaroid(id, update)
}

func (c FakeClient) DestroyPolaroid(ctx context.Context, id string) error {
	return c._DestroyPolaroid(id)
}

type FakeNotifier struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (n *FakeNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Successes = append(n.Successes, message)
}

func (n *FakeNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Errors = append(n.Errors, message)
}
