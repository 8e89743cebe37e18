package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/recensio/data/dto"
	"github.com/emzola/recensio/internal/validator"
	"github.com/emzola/recensio/service"
)

func (h *Handler) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateUserRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user, err := h.service.CreateUser(requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.recordAlreadyExistsResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/users/%s", user.Username))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"user": user}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListUsers
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Username = h.readString(qs, "search", "")
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 10, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "username")
	qsInput.Filters.SortSafeList = []string{"id", "username", "-id", "-username"}
	users, metadata, err := h.service.GetAllUsers(qsInput)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"users": users, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// showUserHandler serves both /v1/users/:username and the "me" alias for the
// authenticated user's own record.
func (h *Handler) showUserHandler(w http.ResponseWriter, r *http.Request) {
	username := h.readStringParam(r, "username")
	if username == "me" {
		username = h.contextGetUser(r).Username
	}
	user, err := h.service.GetUser(username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	username := h.readStringParam(r, "username")
	if username == "me" {
		var requestBody dto.UpdateProfileRequestBody
		err := h.decodeJSON(w, r, &requestBody)
		if err != nil {
			h.badRequestResponse(w, r, err)
			return
		}
		user, err := h.service.UpdateProfile(h.contextGetUser(r), requestBody)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrFailedValidation):
				h.failedValidationResponse(w, r, err)
			case errors.Is(err, service.ErrDuplicateRecord):
				h.recordAlreadyExistsResponse(w, r)
			case errors.Is(err, service.ErrEditConflict):
				h.editConflictResponse(w, r)
			default:
				h.serverErrorResponse(w, r, err)
			}
			return
		}
		err = h.encodeJSON(w, http.StatusOK, envelope{"user": user}, nil)
		if err != nil {
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	var requestBody dto.UpdateUserRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user, err := h.service.UpdateUser(username, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.recordAlreadyExistsResponse(w, r)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	username := h.readStringParam(r, "username")
	err := h.service.DeleteUser(username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "user successfully deleted"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
