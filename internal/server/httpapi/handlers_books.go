package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/bookstore/internal/server/services"
)

const detailBookNotFound = "Book not found"

func (r *Router) handleCreateBook(w http.ResponseWriter, req *http.Request) {
	var in services.BookInput
	if err := decodeJSON(w, req, &in); err != nil {
		r.writeServiceError(w, req, err, "")
		return
	}

	book, err := r.books.Create(req.Context(), in)
	if err != nil {
		r.writeServiceError(w, req, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (r *Router) handleListBooks(w http.ResponseWriter, req *http.Request) {
	list, err := r.books.List(req.Context())
	if err != nil {
		r.writeServiceError(w, req, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"books": list})
}

func (r *Router) handleGetBook(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		r.writeServiceError(w, req, err, "")
		return
	}

	book, err := r.books.Get(req.Context(), id)
	if err != nil {
		r.writeServiceError(w, req, err, detailBookNotFound)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (r *Router) handleUpdateBook(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		r.writeServiceError(w, req, err, "")
		return
	}

	var in services.BookInput
	if err := decodeJSON(w, req, &in); err != nil {
		r.writeServiceError(w, req, err, "")
		return
	}

	book, err := r.books.Update(req.Context(), id, in)
	if err != nil {
		r.writeServiceError(w, req, err, detailBookNotFound)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (r *Router) handleDeleteBook(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		r.writeServiceError(w, req, err, "")
		return
	}

	if err := r.books.Delete(req.Context(), id); err != nil {
		r.writeServiceError(w, req, err, detailBookNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
