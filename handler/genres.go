package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/kritika/data/dto"
	"github.com/emzola/kritika/service"
)

func (h *Handler) createGenreHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateGenreRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	genre, err := h.service.CreateGenre(requestBody.Name, requestBody.Slug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"genre": genre}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	search := h.readString(qs, "search", "")
	genres, err := h.service.ListGenres(search)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"genres": genres}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteGenreHandler(w http.ResponseWriter, r *http.Request) {
	slug := h.readStringParam(r, "slug")
	err := h.service.DeleteGenre(slug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "genre successfully deleted"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
