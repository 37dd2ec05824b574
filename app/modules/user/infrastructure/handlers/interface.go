package userhandlers

import "net/http"

// Handlers is the HTTP surface of the user module.
type Handlers interface {
	HandleListUsers(w http.ResponseWriter, r *http.Request)
	HandleCreateUser(w http.ResponseWriter, r *http.Request)
	HandleLogin(w http.ResponseWriter, r *http.Request)
	HandleSetAdmin(w http.ResponseWriter, r *http.Request)
	HandleDeleteUser(w http.ResponseWriter, r *http.Request)
}

var _ Handlers = (*UserHandlers)(nil)
