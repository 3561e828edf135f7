package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/kritika/data/dto"
	"github.com/emzola/kritika/service"
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

func (h *Handler) obtainTokenHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.ObtainTokenRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	accessToken, err := h.service.ObtainAccessToken(requestBody.Username, requestBody.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"token": accessToken}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
