package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davitran/pressroom/internal/platform/middleware"
	requestutil "github.com/davitran/pressroom/internal/platform/request"
	"github.com/davitran/pressroom/internal/platform/respond"
	"github.com/davitran/pressroom/internal/platform/sec"
	"github.com/davitran/pressroom/pkg/pagination"
)

// Handler implements the HTTP layer for the editorial catalogue.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the content endpoints.
//
// # Routing Strategy
//
//   - Public: listing, search, single reads, and share tracking are open
//     to anonymous visitors. Draft visibility is decided in the service,
//     not here, so the public GET route can still serve an author their
//     own draft.
//   - Authenticated: create, update, and analytics require a verified
//     identity; fine-grained role and ownership rules live in the service.
//   - Admin: delete is gated on the admin role at the route level.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Endpoints
	router.Get("/", handler.listArticles)
	router.Get("/search", handler.searchArticles)
	router.Get("/{id}", handler.getArticle)
	router.Post("/{id}/share", handler.trackShare)

	// ## Editorial Endpoints
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/", handler.createArticle)
		authed.Put("/{id}", handler.updateArticle)
		authed.Get("/{id}/analytics", handler.getAnalytics)

		authed.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteArticle)
	})

	return router
}

func (handler *Handler) listArticles(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		AuthorID: request.URL.Query().Get("author_id"),
	}

	articles, total, err := handler.service.List(request.Context(), requestutil.Claims(request), filter,
		paginationParams.PageSize, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, articles, pagination.NewMeta(paginationParams.Page, paginationParams.PageSize, total))
}

func (handler *Handler) searchArticles(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	term := request.URL.Query().Get("q")

	articles, total, err := handler.service.Search(request.Context(), requestutil.Claims(request), term,
		paginationParams.PageSize, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, articles, pagination.NewMeta(paginationParams.Page, paginationParams.PageSize, total))
}

func (handler *Handler) getArticle(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.Get(request.Context(), requestutil.Claims(request), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

func (handler *Handler) createArticle(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.Create(request.Context(), claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, article)
}

func (handler *Handler) updateArticle(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.Update(request.Context(), claims, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

func (handler *Handler) deleteArticle(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), claims, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) getAnalytics(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.Analytics(request.Context(), claims, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

// shareRequest is the body accepted by the share-tracking endpoint.
type shareRequest struct {
	Platform string `json:"platform"`
}

func (handler *Handler) trackShare(writer http.ResponseWriter, request *http.Request) {
	var input shareRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.TrackShare(request.Context(), requestutil.ID(request, "id"), input.Platform)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
