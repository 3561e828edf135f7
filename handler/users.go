package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/kritika/data"
	"github.com/emzola/kritika/data/dto"
	"github.com/emzola/kritika/internal/validator"
	"github.com/emzola/kritika/service"
)

func (h *Handler) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateUserRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	var role *string
	if requestBody.Role != "" {
		role = &requestBody.Role
	}
	user, err := h.service.CreateUser(requestBody.Username, requestBody.Email, &requestBody.FirstName, &requestBody.LastName, &requestBody.Bio, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"user": user}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListUsers
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Search = h.readString(qs, "search", "")
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.PageSize = h.readInt(qs, "page_size", 10, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "username")
	qsInput.Filters.SortSafeList = []string{"username", "created_at", "-username", "-created_at"}
	users, metadata, err := h.service.ListUsers(qsInput.Search, qsInput.Filters)
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

func (h *Handler) showUserHandler(w http.ResponseWriter, r *http.Request) {
	username := h.readStringParam(r, "username")
	requester := h.contextGetUser(r)
	var user *data.User
	var err error
	if username == "me" {
		user, err = h.service.ShowUserByID(requester.ID)
	} else {
		if !data.PermitAdminOrSuperuser(requester) {
			h.notPermittedResponse(w, r)
			return
		}
		user, err = h.service.ShowUser(username)
	}
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
	var requestBody dto.UpdateUserRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	username := h.readStringParam(r, "username")
	requester := h.contextGetUser(r)
	var user *data.User
	if username == "me" {
		user, err = h.service.UpdateOwnProfile(requester.ID, requestBody.Email, requestBody.FirstName, requestBody.LastName, requestBody.Bio, requestBody.Role)
	} else {
		if !data.PermitAdminOrSuperuser(requester) {
			h.notPermittedResponse(w, r)
			return
		}
		user, err = h.service.UpdateUser(username, requestBody.Email, requestBody.FirstName, requestBody.LastName, requestBody.Bio, requestBody.Role)
	}
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
	err = h.encodeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	username := h.readStringParam(r, "username")
	// Deleting your own account through the "me" alias is not supported.
	if username == "me" {
		h.methodNotAllowed(w, r)
		return
	}
	requester := h.contextGetUser(r)
	if !data.PermitAdminOrSuperuser(requester) {
		h.notPermittedResponse(w, r)
		return
	}
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
