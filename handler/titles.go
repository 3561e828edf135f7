package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/kritika/data/dto"
	"github.com/emzola/kritika/internal/validator"
	"github.com/emzola/kritika/service"
)

func (h *Handler) createTitleHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateTitleRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	title, err := h.service.CreateTitle(requestBody.Name, requestBody.Year, requestBody.Description, requestBody.Category, requestBody.Genres)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"title": title}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listTitlesHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListTitles
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Name = h.readString(qs, "name", "")
	qsInput.Category = h.readString(qs, "category", "")
	qsInput.Genre = h.readString(qs, "genre", "")
	qsInput.Year = h.readInt(qs, "year", 0, v)
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 10, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "name")
	qsInput.Filters.SortSafeList = []string{"name", "year", "-name", "-year"}
	titles, metadata, err := h.service.ListTitles(qsInput.Name, qsInput.Category, qsInput.Genre, qsInput.Year, qsInput.Filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"titles": titles, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showTitleHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := h.readIDParam(r, "titleId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	title, err := h.service.ShowTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"title": title}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updateTitleHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := h.readIDParam(r, "titleId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdateTitleRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	title, err := h.service.UpdateTitle(titleID, requestBody.Name, requestBody.Year, requestBody.Description, requestBody.Category, requestBody.Genres)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"title": title}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteTitleHandler(w http.ResponseWriter, r *http.Request) {
	titleID, err := h.readIDParam(r, "titleId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.DeleteTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "title successfully deleted"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
