package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/kritika/data/dto"
	"github.com/emzola/kritika/service"
)

func (h *Handler) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateCategoryRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	category, err := h.service.CreateCategory(requestBody.Name, requestBody.Slug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"category": category}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	search := h.readString(qs, "search", "")
	categories, err := h.service.ListCategories(search)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"categories": categories}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	slug := h.readStringParam(r, "slug")
	err := h.service.DeleteCategory(slug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "category successfully deleted"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
