package api

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/nathanvale/cortex/internal/apperr"
	"github.com/nathanvale/cortex/internal/docservice"
	"github.com/nathanvale/cortex/internal/output"
	"github.com/nathanvale/cortex/internal/query"
)

// Handler holds API route handlers.
type Handler struct {
	svc    *docservice.Service
	logger *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(svc *docservice.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger.With("component", "api")}
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	if statusFor(err) >= http.StatusInternalServerError {
		h.logger.Error(op+" failed", slog.String("error", err.Error()))
	}
	writeError(w, err)
}

// ListDocs handles GET /api/docs.
//
//	@Summary		List documents, newest first
//	@Tags			docs
//	@Produce		json
//	@Param			type	query		string	false	"Filter by type"
//	@Param			status	query		string	false	"Filter by status"
//	@Param			project	query		string	false	"Filter by project"
//	@Param			tags	query		string	false	"Comma-separated tags, any match"
//	@Param			fields	query		string	false	"Comma-separated fields to project"
//	@Success		200		{object}	SuccessEnvelope{data=[]DocItem}
//	@Security		BearerAuth
//	@Router			/docs [get]
func (h *Handler) ListDocs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := query.Filters{
		Type:    q.Get("type"),
		Status:  q.Get("status"),
		Project: q.Get("project"),
		Tags:    query.ParseList(q.Get("tags")),
	}

	page, err := h.svc.List(r.Context(), f)
	if err != nil {
		h.fail(w, "list docs", err)
		return
	}
	writeJSON(w, http.StatusOK, output.NewSuccess(
		output.Docs(page.Docs, query.ParseList(q.Get("fields"))),
		output.WithCount(len(page.Docs)),
		output.WithWarnings(page.Warnings),
	))
}

// GetDoc handles GET /api/docs/{stem}.
//
//	@Summary		Resolve one document by stem, exact match first
//	@Tags			docs
//	@Produce		json
//	@Param			stem	path		string	true	"Stem or unique stem substring"
//	@Success		200		{object}	SuccessEnvelope{data=DocDetail}
//	@Failure		404		{object}	ErrorEnvelope
//	@Failure		409		{object}	ErrorEnvelope
//	@Security		BearerAuth
//	@Router			/docs/{stem} [get]
func (h *Handler) GetDoc(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "stem")
	if decoded, err := url.PathUnescape(id); err == nil {
		id = decoded
	}

	page, err := h.svc.Resolve(r.Context(), id)
	if err != nil {
		h.fail(w, "get doc", err)
		return
	}
	writeJSON(w, http.StatusOK, output.NewSuccess(
		output.DocDetail(page.Docs[0]),
		output.WithCount(1),
		output.WithWarnings(page.Warnings),
	))
}

// Search handles GET /api/search.
//
//	@Summary		Case-insensitive substring search
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results (default 20)"
//	@Param			fields	query		string	false	"Comma-separated fields to project"
//	@Success		200		{object}	SuccessEnvelope{data=[]DocItem}
//	@Failure		400		{object}	ErrorEnvelope
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := q.Get("q")
	if text == "" {
		writeError(w, apperr.Usage("query parameter 'q' is required"))
		return
	}
	limit, err := query.ParseLimit(q.Get("limit"))
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := h.svc.Search(r.Context(), text, limit)
	if err != nil {
		h.fail(w, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, output.NewSuccess(
		output.Docs(page.Docs, query.ParseList(q.Get("fields"))),
		output.WithCount(len(page.Docs)),
		output.WithWarnings(page.Warnings),
	))
}
