package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polaroidwall/polaroidwall/pkg/client/config"
	"github.com/polaroidwall/polaroidwall/pkg/models"
	"github.com/polaroidwall/polaroidwall/pkg/server/api"
)

// run executes the CLI against a throwaway config file pointing at handler
func run(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), ".polaroids.toml")
	require.NoError(t, config.Store(config.Config{URL: server.URL}, path))

	return runWithConfig(t, path, args...)
}

func runWithConfig(t *testing.T, path string, args ...string) (string, error) {
	var out bytes.Buffer
	root := Root()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", path}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Polaroid{
			{ID: "1", Image: "/uploads/1.jpg", Caption: "Beach", Date: "2024-01-01"},
		})
	}, "list")

	require.NoError(t, err)
	assert.Equal(t, "1 [2024-01-01] Beach /uploads/1.jpg\n", out)
}

func TestAdd(t *testing.T) {
	image := filepath.Join(t.TempDir(), "a.jpg")
	require.NoError(t, os.WriteFile(image, []byte("jpeg bytes"), 0644))

	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "a.jpg", header.Filename)
		json.NewEncoder(w).Encode(models.Polaroid{
			ID: "1", Image: "/uploads/1.jpg", Caption: r.FormValue("caption"), Date: r.FormValue("date"),
		})
	}, "add", image, "Beach", "2024-01-01")

	require.NoError(t, err)
	assert.Equal(t, "1 [2024-01-01] Beach /uploads/1.jpg\n", out)
}

func TestEditSendsOnlyChangedFields(t *testing.T) {
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/api/polaroids/1", r.URL.Path)

		var update models.PolaroidUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		assert.Nil(t, update.Date)

		json.NewEncoder(w).Encode(update.Apply(models.Polaroid{
			ID: "1", Image: "/uploads/1.jpg", Caption: "Beach", Date: "2024-01-01",
		}))
	}, "edit", "1", "--caption", "Beach Day")

	require.NoError(t, err)
	assert.Equal(t, "1 [2024-01-01] Beach Day /uploads/1.jpg\n", out)
}

func TestEditRequiresAFlag(t *testing.T) {
	_, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}, "edit", "1")

	assert.EqualError(t, err, "Nothing to change: pass --caption and/or --date")
}

func TestDeleteNotFound(t *testing.T) {
	_, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		api.PolaroidNotFoundError.Render(w, http.StatusNotFound)
	}, "delete", "1")

	assert.EqualError(t, err, "Could not delete polaroid: Polaroid Not Found (The polaroid you specified could not be found)")
}

func TestConfigSetAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".polaroids.toml")

	_, err := runWithConfig(t, path, "config", "set", "url", "https://album.example/")
	require.NoError(t, err)

	out, err := runWithConfig(t, path, "config", "show")
	require.NoError(t, err)
	assert.Equal(t, "URL: https://album.example\n", out)

	_, err = runWithConfig(t, path, "config", "set", "colour", "red")
	assert.EqualError(t, err, "Invalid key")
}
