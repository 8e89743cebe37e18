package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/recensio/data/dto"
	"github.com/emzola/recensio/service"
)

func (h *Handler) signupHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.SignupRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user, err := h.service.Signup(requestBody.Username, requestBody.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation) || errors.Is(err, service.ErrDuplicateRecord):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	response := envelope{
		"username": user.Username,
		"email":    user.Email,
	}
	err = h.encodeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) exchangeTokenHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.ExchangeTokenRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	token, err := h.service.ExchangeToken(requestBody.Username, requestBody.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadRequest) || errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"token": token}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
