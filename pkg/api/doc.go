// Package api defines the Librarian wire API: request and response
// messages, Connect handler and client bindings for each service, and the
// structured validation detail attached to rejected requests.
//
// Messages travel as JSON (see Codec); procedures are named
// "/librarian.v1.<Service>/<Method>".
package api
