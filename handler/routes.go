package handler

import (
	"expvar"
	"net/http"

	"github.com/emzola/recensio/internal/authz"
	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodPost, "/v1/auth/signup", h.signupHandler)
	router.HandlerFunc(http.MethodPost, "/v1/auth/token", h.exchangeTokenHandler)

	router.HandlerFunc(http.MethodGet, "/v1/categories", h.requirePermission(authz.ActionList, authz.ResourceCategories, h.listCategoriesHandler))
	router.HandlerFunc(http.MethodPost, "/v1/categories", h.requirePermission(authz.ActionCreate, authz.ResourceCategories, h.createCategoryHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/categories/:slug", h.requirePermission(authz.ActionDelete, authz.ResourceCategories, h.deleteCategoryHandler))

	router.HandlerFunc(http.MethodGet, "/v1/genres", h.requirePermission(authz.ActionList, authz.ResourceGenres, h.listGenresHandler))
	router.HandlerFunc(http.MethodPost, "/v1/genres", h.requirePermission(authz.ActionCreate, authz.ResourceGenres, h.createGenreHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/genres/:slug", h.requirePermission(authz.ActionDelete, authz.ResourceGenres, h.deleteGenreHandler))

	router.HandlerFunc(http.MethodGet, "/v1/titles", h.requirePermission(authz.ActionList, authz.ResourceTitles, h.listTitlesHandler))
	router.HandlerFunc(http.MethodPost, "/v1/titles", h.requirePermission(authz.ActionCreate, authz.ResourceTitles, h.createTitleHandler))
	router.HandlerFunc(http.MethodGet, "/v1/titles/:titleId", h.requirePermission(authz.ActionRetrieve, authz.ResourceTitles, h.showTitleHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/titles/:titleId", h.requirePermission(authz.ActionUpdate, authz.ResourceTitles, h.updateTitleHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/titles/:titleId", h.requirePermission(authz.ActionDelete, authz.ResourceTitles, h.deleteTitleHandler))

	router.HandlerFunc(http.MethodGet, "/v1/titles/:titleId/reviews", h.requirePermission(authz.ActionList, authz.ResourceReviews, h.listReviewsHandler))
	router.HandlerFunc(http.MethodPost, "/v1/titles/:titleId/reviews", h.requirePermission(authz.ActionCreate, authz.ResourceReviews, h.createReviewHandler))
	router.HandlerFunc(http.MethodGet, "/v1/titles/:titleId/reviews/:reviewId", h.requirePermission(authz.ActionRetrieve, authz.ResourceReviews, h.showReviewHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/titles/:titleId/reviews/:reviewId", h.requireReviewAuthorPermission(authz.ActionUpdate, h.updateReviewHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/titles/:titleId/reviews/:reviewId", h.requireReviewAuthorPermission(authz.ActionDelete, h.deleteReviewHandler))

	router.HandlerFunc(http.MethodGet, "/v1/titles/:titleId/reviews/:reviewId/comments", h.requirePermission(authz.ActionList, authz.ResourceComments, h.listCommentsHandler))
	router.HandlerFunc(http.MethodPost, "/v1/titles/:titleId/reviews/:reviewId/comments", h.requirePermission(authz.ActionCreate, authz.ResourceComments, h.createCommentHandler))
	router.HandlerFunc(http.MethodGet, "/v1/titles/:titleId/reviews/:reviewId/comments/:commentId", h.requirePermission(authz.ActionRetrieve, authz.ResourceComments, h.showCommentHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/titles/:titleId/reviews/:reviewId/comments/:commentId", h.requireCommentAuthorPermission(authz.ActionUpdate, h.updateCommentHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/titles/:titleId/reviews/:reviewId/comments/:commentId", h.requireCommentAuthorPermission(authz.ActionDelete, h.deleteCommentHandler))

	router.HandlerFunc(http.MethodGet, "/v1/users", h.requirePermission(authz.ActionList, authz.ResourceUsers, h.listUsersHandler))
	router.HandlerFunc(http.MethodPost, "/v1/users", h.requirePermission(authz.ActionCreate, authz.ResourceUsers, h.createUserHandler))
	router.HandlerFunc(http.MethodGet, "/v1/users/:username", h.requireUserPermission(authz.ActionRetrieve, h.showUserHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/users/:username", h.requireUserPermission(authz.ActionUpdate, h.updateUserHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/users/:username", h.requireUserPermission(authz.ActionDelete, h.deleteUserHandler))

	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))
	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.recoverPanic(h.metrics(h.enableCORS(h.rateLimit(h.authenticate(router)))))
}
