package server

import (
	"bytes"
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/common/log"

	"github.com/polaroidwall/polaroidwall/pkg/models"
	"github.com/polaroidwall/polaroidwall/pkg/storage"
	"github.com/polaroidwall/polaroidwall/pkg/store"
)

func NewFakeLogger() (log.Logger, *bytes.Buffer) {
	var buffer bytes.Buffer
	return log.NewLogger(&buffer), &buffer
}

// InMemoryPolaroidStore behaves like DBPolaroidStore without a database
type InMemoryPolaroidStore struct {
	mu        sync.Mutex
	polaroids []models.Polaroid
}

func (s *InMemoryPolaroidStore) Create(ctx context.Context, polaroid models.Polaroid) (models.Polaroid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	polaroid.ID = uuid.New().String()
	s.polaroids = append(s.polaroids, polaroid)
	return polaroid, nil
}

func (s *InMemoryPolaroidStore) List(ctx context.Context) ([]models.Polaroid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.Polaroid{}, s.polaroids...), nil
}

func (s *InMemoryPolaroidStore) Update(ctx context.Context, id string, update models.PolaroidUpdate) (models.Polaroid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, polaroid := range s.polaroids {
		if polaroid.ID == id {
			s.polaroids[i] = update.Apply(polaroid)
			return s.polaroids[i], nil
		}
	}
	return models.Polaroid{}, store.ErrPolaroidNotFound
}

func (s *InMemoryPolaroidStore) Destroy(ctx context.Context, id string) (models.Polaroid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, polaroid := range s.polaroids {
		if polaroid.ID == id {
			s.polaroids = append(s.polaroids[:i], s.polaroids[i+1:]...)
			return polaroid, nil
		}
	}
	return models.Polaroid{}, store.ErrPolaroidNotFound
}

type FakePolaroidStore struct {
	store.PolaroidStore
	_List func() ([]models.Polaroid, error)
}

func (s FakePolaroidStore) List(ctx context.Context) ([]models.Polaroid, error) {
	return s._List()
}

type FakeStorage struct {
	storage.Storage
	_List   func() ([]storage.File, error)
	_Remove func(image string) error
}

func (s FakeStorage) List(ctx context.Context) ([]storage.File, error) {
	return s._List()
}

func (s FakeStorage) Remove(ctx context.Context, image string) error {
	return s._Remove(image)
}
