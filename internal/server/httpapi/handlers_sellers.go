package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/bookstore/internal/server/services"
)

const detailSellerNotFound = "Seller not found"

func (r *Router) handleCreateSeller(w http.ResponseWriter, req *http.Request) {
	var in services.SellerInput
	if err := decodeJSON(w, req, &in); err != nil {
		r.writeServiceError(w, req, err, "")
		return
	}

	seller, err := r.sellers.Register(req.Context(), in)
	if err != nil {
		r.writeServiceError(w, req, err, "")
		return
	}

	r.logger.Info(req.Context(), "seller registered", "seller_id", seller.ID)
	writeJSON(w, http.StatusCreated, seller)
}

func (r *Router) handleListSellers(w http.ResponseWriter, req *http.Request) {
	list, err := r.sellers.List(req.Context())
	if err != nil {
		r.writeServiceError(w, req, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sellers": list})
}

// handleGetSeller serves the seller detail with nested books. It sits behind
// requireAuth; any authenticated seller may read any seller.
func (r *Router) handleGetSeller(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		r.writeServiceError(w, req, err, "")
		return
	}

	if caller, ok := sellerFromContext(req.Context()); ok {
		r.logger.Debug(req.Context(), "seller detail", "seller_id", id, "caller_id", caller.ID)
	}

	seller, err := r.sellers.GetWithBooks(req.Context(), id)
	if err != nil {
		r.writeServiceError(w, req, err, detailSellerNotFound)
		return
	}
	writeJSON(w, http.StatusOK, seller)
}

func (r *Router) handleUpdateSeller(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		r.writeServiceError(w, req, err, "")
		return
	}

	var in services.SellerUpdate
	if err := decodeJSON(w, req, &in); err != nil {
		r.writeServiceError(w, req, err, "")
		return
	}

	seller, err := r.sellers.Update(req.Context(), id, in)
	if err != nil {
		r.writeServiceError(w, req, err, detailSellerNotFound)
		return
	}
	writeJSON(w, http.StatusOK, seller)
}

func (r *Router) handleDeleteSeller(w http.ResponseWriter, req *http.Request) {
	id, err := pathID(req)
	if err != nil {
		r.writeServiceError(w, req, err, "")
		return
	}

	if err := r.sellers.Delete(req.Context(), id); err != nil {
		r.writeServiceError(w, req, err, detailSellerNotFound)
		return
	}

	r.logger.Info(req.Context(), "seller deleted", "seller_id", id)
	w.WriteHeader(http.StatusNoContent)
}
