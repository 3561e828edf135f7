package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodPost, "/v1/auth/signup", h.signupHandler)
	router.HandlerFunc(http.MethodPost, "/v1/auth/token", h.obtainTokenHandler)

	// The reserved "me" value arrives through the :username routes and is
	// dispatched inside the handlers, where the admin check is replaced with
	// a plain authentication check.
	router.HandlerFunc(http.MethodGet, "/v1/users", h.requireAdminOrSuperuser(h.listUsersHandler))
	router.HandlerFunc(http.MethodPost, "/v1/users", h.requireAdminOrSuperuser(h.createUserHandler))
	router.HandlerFunc(http.MethodGet, "/v1/users/:username", h.requireAuthenticatedUser(h.showUserHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/users/:username", h.requireAuthenticatedUser(h.updateUserHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/users/:username", h.requireAuthenticatedUser(h.deleteUserHandler))

	router.HandlerFunc(http.MethodGet, "/v1/categories", h.requireAdminOrReadOnly(h.listCategoriesHandler))
	router.HandlerFunc(http.MethodPost, "/v1/categories", h.requireAdminOrReadOnly(h.createCategoryHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/categories/:slug", h.requireAdminOrReadOnly(h.deleteCategoryHandler))

	router.HandlerFunc(http.MethodGet, "/v1/genres", h.requireAdminOrReadOnly(h.listGenresHandler))
	router.HandlerFunc(http.MethodPost, "/v1/genres", h.requireAdminOrReadOnly(h.createGenreHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/genres/:slug", h.requireAdminOrReadOnly(h.deleteGenreHandler))

	router.HandlerFunc(http.MethodGet, "/v1/titles", h.requireAdminOrReadOnly(h.listTitlesHandler))
	router.HandlerFunc(http.MethodPost, "/v1/titles", h.requireAdminOrReadOnly(h.createTitleHandler))
	router.HandlerFunc(http.MethodGet, "/v1/titles/:titleId", h.requireAdminOrReadOnly(h.showTitleHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/titles/:titleId", h.requireAdminOrReadOnly(h.updateTitleHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/titles/:titleId", h.requireAdminOrReadOnly(h.deleteTitleHandler))

	router.HandlerFunc(http.MethodGet, "/v1/titles/:titleId/reviews", h.listReviewsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/titles/:titleId/reviews", h.requireAuthenticatedUser(h.createReviewHandler))
	router.HandlerFunc(http.MethodGet, "/v1/titles/:titleId/reviews/:reviewId", h.showReviewHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/titles/:titleId/reviews/:reviewId", h.requireReviewAccessPermission(h.updateReviewHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/titles/:titleId/reviews/:reviewId", h.requireReviewAccessPermission(h.deleteReviewHandler))

	router.HandlerFunc(http.MethodGet, "/v1/titles/:titleId/reviews/:reviewId/comments", h.listCommentsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/titles/:titleId/reviews/:reviewId/comments", h.requireAuthenticatedUser(h.createCommentHandler))
	router.HandlerFunc(http.MethodGet, "/v1/titles/:titleId/reviews/:reviewId/comments/:commentId", h.showCommentHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/titles/:titleId/reviews/:reviewId/comments/:commentId", h.requireCommentAccessPermission(h.updateCommentHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/titles/:titleId/reviews/:reviewId/comments/:commentId", h.requireCommentAccessPermission(h.deleteCommentHandler))

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.recoverPanic(h.enableCORS(h.rateLimit(h.authenticate(h.metrics(router)))))
}
