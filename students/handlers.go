// Package students encapsulates the student records API.
// This file, `handlers.go`, is responsible for handling HTTP requests under `/students`.
// It acts as the "Controller" layer: it decodes requests, reads the caller's
// identity placed in the context by the auth filter, delegates to the Service
// and formulates HTTP responses.
package students

import (
	"io"
	"net/http"

	// `chi` is a lightweight, idiomatic and composable router for building HTTP services in Go.
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/user/studentsvc/apperror"
	"github.com/user/studentsvc/auth"
	"github.com/user/studentsvc/logging"
)

// maxBodyBytes bounds create/update bodies; a student record is tiny.
const maxBodyBytes = 1 << 20

// Handlers provides HTTP handlers for the student records API.
type Handlers struct {
	service *Service
	logger  logging.Logger
}

// NewHandlers creates new Handlers.
func NewHandlers(service *Service, logger logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Handlers{service: service, logger: logger}
}

// RegisterRoutes registers the student routes on a router that is expected to be
// mounted at `/students` behind auth.Middleware.
func (h *Handlers) RegisterRoutes(router chi.Router) {
	router.Get("/", h.HandleList())
	router.Post("/", h.HandleCreate())
	router.Put("/", h.HandleUpdate())
	router.Get("/{id}", h.HandleGet())
	// The web client sends updates to `/students/{id}`.
	router.Put("/{id}", h.HandleUpdate())
	router.Delete("/{id}", h.HandleDelete())
}

// fail writes err and logs it when it's a server-side failure.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	if ae, ok := apperror.FromError(err); !ok || ae.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "student request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	auth.WriteError(w, r, err)
}

// user returns the identity stored by the auth filter.
func (h *Handlers) user(w http.ResponseWriter, r *http.Request) (auth.UserContext, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		// Only reachable when the routes are mounted without the middleware.
		h.fail(w, r, apperror.NewAuthError("no authenticated user in request context", nil))
		return auth.UserContext{}, false
	}
	return user, true
}

func readPayload(w http.ResponseWriter, r *http.Request) (StudentPayload, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return StudentPayload{}, apperror.NewBadRequestError("failed to read request body", err)
	}
	return DecodePayload(body)
}

// HandleList godoc
// @Summary List students
// @Description Returns every student record in stored order.
// @Tags students
// @Produce json
// @Security TokenAuth
// @Success 200 {array} store.Student
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid credential"
// @Router /students [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.user(w, r)
		if !ok {
			return
		}
		auth.WriteJSON(w, http.StatusOK, h.service.List(r.Context(), user))
	}
}

// HandleGet godoc
// @Summary Get a student
// @Tags students
// @Produce json
// @Security TokenAuth
// @Param id path int true "Student ID"
// @Success 200 {object} store.Student
// @Failure 400 {object} apperror.ErrorResponse "Invalid id"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid credential"
// @Failure 404 {object} apperror.ErrorResponse "No student with this id"
// @Router /students/{id} [get]
func (h *Handlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.user(w, r)
		if !ok {
			return
		}
		id, err := ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			h.fail(w, r, err)
			return
		}

		student, err := h.service.Get(r.Context(), user, id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, student)
	}
}

// HandleCreate godoc
// @Summary Create a student
// @Description Appends a student. Duplicate ids are accepted. `id` may be a number or a numeric string.
// @Tags students
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param student body StudentRequest true "Student to create"
// @Success 200 {object} store.Student
// @Failure 400 {object} apperror.ErrorResponse "Body is not a JSON object, or invalid id"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid credential"
// @Failure 500 {object} apperror.ErrorResponse "Record store failure"
// @Router /students [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.user(w, r)
		if !ok {
			return
		}
		payload, err := readPayload(w, r)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		student, err := h.service.Create(r.Context(), user, payload)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, student)
	}
}

// HandleUpdate godoc
// @Summary Update a student
// @Description Replaces the first student with the body's id, keeping its position.
// @Description On `/students/{id}` a body without id takes the path id; a different body id is rejected.
// @Tags students
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param student body StudentRequest true "Replacement record"
// @Success 200 {object} store.Student
// @Failure 400 {object} apperror.ErrorResponse "Body is not a JSON object, or invalid id"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid credential"
// @Failure 404 {object} apperror.ErrorResponse "No student with this id"
// @Failure 500 {object} apperror.ErrorResponse "Record store failure"
// @Router /students [put]
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.user(w, r)
		if !ok {
			return
		}
		payload, err := readPayload(w, r)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		if rawID := chi.URLParam(r, "id"); rawID != "" {
			if payload, err = bindPathID(payload, rawID); err != nil {
				h.fail(w, r, err)
				return
			}
		}

		student, err := h.service.Update(r.Context(), user, payload)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, student)
	}
}

// bindPathID reconciles the `{id}` path parameter with the body id.
func bindPathID(payload StudentPayload, rawID string) (StudentPayload, error) {
	pathID, err := ParsePathID(rawID)
	if err != nil {
		return payload, err
	}
	if !payload.HasID() {
		payload.RawID = []byte(rawID)
		return payload, nil
	}
	bodyID, err := payload.ParseID()
	if err != nil {
		return payload, err
	}
	if bodyID != pathID {
		return payload, apperror.NewInvalidIDError("id in body does not match id in path", nil)
	}
	return payload, nil
}

// HandleDelete godoc
// @Summary Delete a student
// @Tags students
// @Produce json
// @Security TokenAuth
// @Param id path int true "Student ID"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} apperror.ErrorResponse "Invalid id"
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid credential"
// @Failure 404 {object} apperror.ErrorResponse "No student with this id"
// @Failure 500 {object} apperror.ErrorResponse "Record store failure"
// @Router /students/{id} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.user(w, r)
		if !ok {
			return
		}
		id, err := ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			h.fail(w, r, err)
			return
		}

		resp, err := h.service.Delete(r.Context(), user, id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, resp)
	}
}
