package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/pizzeria/internal/api/apierr"
)

// pathID parses the {id} route variable
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, apierr.NewInvalidRequestError("id must be a positive integer")
	}
	return id, nil
}
