package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/common"
)

const detailBadLogin = "Incorrect username or password"

// loginPayload is the JSON login body. username is accepted as an alias of
// email so form and JSON clients can share field names.
type loginPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleToken accepts either an OAuth2 password form (username, password)
// or a JSON body and answers with a bearer token.
func (r *Router) handleToken(w http.ResponseWriter, req *http.Request) {
	var email, password string

	if strings.HasPrefix(req.Header.Get("Content-Type"), "application/json") {
		var p loginPayload
		if err := decodeJSON(w, req, &p); err != nil {
			r.writeServiceError(w, req, err, "")
			return
		}
		email, password = p.Email, p.Password
		if email == "" {
			email = p.Username
		}
	} else {
		email = req.PostFormValue("username")
		password = req.PostFormValue("password")
	}

	if email == "" {
		writeError(w, http.StatusUnprocessableEntity, "username: field required")
		return
	}
	if password == "" {
		writeError(w, http.StatusUnprocessableEntity, "password: field required")
		return
	}

	resp, err := r.auth.Login(req.Context(), email, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			r.logger.Info(req.Context(), "login rejected")
			writeUnauthorized(w, detailBadLogin)
			return
		}
		r.writeServiceError(w, req, err, "")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
