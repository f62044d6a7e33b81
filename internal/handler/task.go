package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo/internal/model"
	"github.com/BuzzLyutic/todo/pkg/respond"
)

// GenericErrorMessage is the only message a caller sees for non-validation failures.
const GenericErrorMessage = "Something is UNUSUAL."

var errValidation = errors.New("validation error")

type taskService interface {
	Create(ctx context.Context, in model.CreateTaskInput) (model.TaskListResult, error)
	MarkCompleted(ctx context.Context, id int64) (model.TaskListResult, error)
	Delete(ctx context.Context, id int64) (model.TaskListResult, error)
	List(ctx context.Context, page int, completed bool) (model.TaskListResult, error)
	Ping(ctx context.Context) error
}

type createTaskRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description" validate:"omitempty,max=65535"`
}

type TaskHandler struct {
	service  taskService
	logger   *zap.Logger
	validate *validator.Validate
}

func NewTaskHandler(srv taskService, logger *zap.Logger) *TaskHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskHandler{
		service:  srv,
		logger:   logger,
		validate: validator.New(),
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			h.handleErrors(w, r, fmt.Errorf("%w: title should not be empty", errValidation))
			return
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.handleErrors(w, r, fmt.Errorf("%w: request body too large", errValidation))
			return
		}
		h.handleErrors(w, r, fmt.Errorf("%w: invalid json", errValidation))
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if err := h.validate.Struct(req); err != nil {
		h.handleErrors(w, r, fmt.Errorf("%w: %s", errValidation, validationMessage(err)))
		return
	}

	result, err := h.service.Create(r.Context(), model.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.OK(w, r, http.StatusCreated, result)
}

func (h *TaskHandler) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	result, err := h.service.MarkCompleted(r.Context(), id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.OK(w, r, http.StatusOK, result)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	result, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.OK(w, r, http.StatusOK, result)
}

func (h *TaskHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *TaskHandler) ListNotCompleted(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *TaskHandler) list(w http.ResponseWriter, r *http.Request, completed bool) {
	result, err := h.service.List(r.Context(), parsePage(r), completed)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.OK(w, r, http.StatusOK, result)
}

// parsePage substitutes 1 for an absent, unparsable or non-positive page.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be an integer", errValidation)
	}
	return id, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid payload"
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " should not be empty"
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", field, fe.Param())
	}
	return field + " is invalid"
}

// handleErrors is the single place where failures become envelopes. Only
// validation failures carry their own message; NotFound is a plain 500.
func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errValidation):
		respond.Error(w, r, http.StatusBadRequest, strings.TrimPrefix(err.Error(), errValidation.Error()+": "))
	default:
		h.logger.Error("internal error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respond.Error(w, r, http.StatusInternalServerError, GenericErrorMessage)
	}
}
