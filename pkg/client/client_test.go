package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polaroidwall/polaroidwall/pkg/models"
	"github.com/polaroidwall/polaroidwall/pkg/server/api"
)

func beach() models.Polaroid {
	return models.Polaroid{ID: "1", Image: "/uploads/1.jpg", Caption: "Beach", Date: "2024-01-01"}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return Client{URL: server.URL}
}

func TestListPolaroids(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/polaroids", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Polaroid{beach()})
	})

	polaroids, err := client.ListPolaroids(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.Polaroid{beach()}, polaroids)
}

func TestCreatePolaroid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		contents, _ := io.ReadAll(file)

		assert.Equal(t, "a.jpg", header.Filename)
		assert.Equal(t, "jpeg bytes", string(contents))
		assert.Equal(t, "Beach", r.FormValue("caption"))
		assert.Equal(t, "2024-01-01", r.FormValue("date"))

		json.NewEncoder(w).Encode(beach())
	})

	polaroid, err := client.CreatePolaroid(
		context.Background(),
		Upload{Filename: "/home/me/photos/a.jpg", Content: strings.NewReader("jpeg bytes")},
		"Beach",
		"2024-01-01",
	)

	require.NoError(t, err)
	assert.Equal(t, beach(), polaroid)
}

func TestUpdatePolaroid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/api/polaroids/1", r.URL.Path)

		var update models.PolaroidUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		require.NotNil(t, update.Caption)
		assert.Nil(t, update.Date)

		json.NewEncoder(w).Encode(update.Apply(beach()))
	})

	caption := "Beach Day"
	polaroid, err := client.UpdatePolaroid(context.Background(), "1", models.PolaroidUpdate{Caption: &caption})

	require.NoError(t, err)
	assert.Equal(t, "Beach Day", polaroid.Caption)
	assert.Equal(t, "2024-01-01", polaroid.Date)
}

func TestDestroyPolaroidNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		api.PolaroidNotFoundError.Render(w, http.StatusNotFound)
	})

	err := client.DestroyPolaroid(context.Background(), "1")

	assert.EqualError(t, err, "Polaroid Not Found (The polaroid you specified could not be found)")
	assert.True(t, IsNotFound(err))
}

func TestDestroyPolaroid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"Polaroid deleted successfully"}`))
	})

	assert.NoError(t, client.DestroyPolaroid(context.Background(), "1"))
}

func TestNonJSONErrorsKeepTheBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream timed out", http.StatusBadGateway)
	})

	_, err := client.ListPolaroids(context.Background())

	assert.EqualError(t, err, "Bad Gateway (upstream timed out)")
	assert.False(t, IsNotFound(err))
}
