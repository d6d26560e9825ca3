package routes

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/polaroidwall/polaroidwall/pkg/models"
	"github.com/polaroidwall/polaroidwall/pkg/server/api"
	"github.com/polaroidwall/polaroidwall/pkg/server/api/middleware"
	"github.com/polaroidwall/polaroidwall/pkg/storage"
	"github.com/polaroidwall/polaroidwall/pkg/store"
)

// DefaultMaxUploadBytes bounds the size of a create request when the route set
// is not given an explicit limit
const DefaultMaxUploadBytes = 32 << 20

// Form parts above this size are spooled to temporary files by ParseMultipartForm
const multipartMemory = 8 << 20

// ImageField is the multipart field carrying the uploaded file
const ImageField = "image"

type Polaroids struct {
	PolaroidStore  store.PolaroidStore
	Storage        storage.Storage
	MaxUploadBytes int64
}

type DestroyPolaroidResponse struct {
	Message string `json:"message"`
}

func (p Polaroids) List(w http.ResponseWriter, r *http.Request) error {
	polaroids, err := p.PolaroidStore.List(r.Context())
	if err != nil {
		return errors.Wrap(err, "failed to get polaroids")
	}

	return errors.Wrap(
		json.NewEncoder(w).Encode(polaroids),
		"failed to marshal polaroids",
	)
}

func (p Polaroids) Create(w http.ResponseWriter, r *http.Request) error {
	logger, err := middleware.GetLogger(r)
	if err != nil {
		return err
	}

	r.Body = http.MaxBytesReader(w, r.Body, p.maxUploadBytes())
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		logger.Info(err.Error())
		api.InvalidFormError.Render(w, http.StatusBadRequest)
		return nil
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(ImageField)
	if err != nil {
		logger.Info(err.Error())
		api.MissingImageError.Render(w, http.StatusBadRequest)
		return nil
	}
	defer file.Close()

	caption := r.FormValue("caption")
	date := r.FormValue("date")
	for _, field := range []struct{ name, value string }{{"caption", caption}, {"date", date}} {
		if field.value == "" {
			logger.With("field", field.name).Info("missing required field")
			api.MissingFieldError(field.name).Render(w, http.StatusBadRequest)
			return nil
		}
	}

	image, err := p.Storage.Save(r.Context(), file, header.Filename)
	if err != nil {
		return errors.Wrap(err, "failed to store image")
	}

	polaroid, err := p.PolaroidStore.Create(r.Context(), models.NewPolaroid(image, caption, date))
	if err != nil {
		if rmErr := p.Storage.Remove(r.Context(), image); rmErr != nil {
			logger.With("image", image).Error(rmErr.Error())
		}

		if store.IsValidation(err) {
			logger.Info(err.Error())
			api.MissingFieldError(errors.Cause(err).(store.ValidationError).Field).Render(w, http.StatusBadRequest)
			return nil
		}
		return errors.Wrap(err, "failed to create polaroid")
	}

	logger.With("polaroid", polaroid.ID).With("image", image).Info("created polaroid")

	w.WriteHeader(http.StatusOK)
	return errors.Wrap(
		json.NewEncoder(w).Encode(polaroid),
		"failed to marshal polaroid",
	)
}

func (p Polaroids) Update(w http.ResponseWriter, r *http.Request) error {
	logger, err := middleware.GetLogger(r)
	if err != nil {
		return err
	}

	id := mux.Vars(r)["id"]

	// An empty body changes nothing and returns the polaroid as it is
	var update models.PolaroidUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil && err != io.EOF {
		logger.Info(err.Error())
		api.InvalidJSONError.Render(w, http.StatusBadRequest)
		return nil
	}

	polaroid, err := p.PolaroidStore.Update(r.Context(), id, update)
	if store.IsNotFound(err) {
		logger.With("polaroid", id).Info(err.Error())
		api.PolaroidNotFoundError.Render(w, http.StatusNotFound)
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to update polaroid %s", id)
	}

	logger.With("polaroid", id).Info("updated polaroid")

	return errors.Wrap(
		json.NewEncoder(w).Encode(polaroid),
		"failed to marshal polaroid",
	)
}

func (p Polaroids) Destroy(w http.ResponseWriter, r *http.Request) error {
	logger, err := middleware.GetLogger(r)
	if err != nil {
		return err
	}

	id := mux.Vars(r)["id"]

	logger.With("polaroid", id).Info("destroying polaroid")
	polaroid, err := p.PolaroidStore.Destroy(r.Context(), id)
	if store.IsNotFound(err) {
		logger.With("polaroid", id).Info(err.Error())
		api.PolaroidNotFoundError.Render(w, http.StatusNotFound)
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to destroy polaroid %s", id)
	}

	// The row is already gone, so a failure here only leaves an orphaned file
	// behind for the sweeper.
	if err := p.Storage.Remove(r.Context(), polaroid.Image); err != nil {
		logger.With("polaroid", id).With("image", polaroid.Image).Error(
			errors.Wrap(err, "failed to remove image file").Error(),
		)
	}

	return errors.Wrap(
		json.NewEncoder(w).Encode(DestroyPolaroidResponse{Message: "Polaroid deleted successfully"}),
		"failed to marshal response",
	)
}

func (p Polaroids) maxUploadBytes() int64 {
	if p.MaxUploadBytes > 0 {
		return p.MaxUploadBytes
	}
	return DefaultMaxUploadBytes
}
