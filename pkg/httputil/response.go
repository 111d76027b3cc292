package httputil

import (
	"encoding/json"
	"net/http"
)

// Stable error codes shared by the gateway, the handler guards, and the
// dashboard client. Clients branch on these, never on the human-readable
// message.
const (
	CodeAuthRequired            = "AUTH_REQUIRED"
	CodeMissingAuth             = "MISSING_AUTH"
	CodeMissingOrganization     = "MISSING_ORGANIZATION"
	CodeOrganizationInactive    = "ORGANIZATION_INACTIVE"
	CodeInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"
	CodeMiddlewareError         = "MIDDLEWARE_ERROR"
	CodeInternalError           = "INTERNAL_ERROR"
	CodeBadRequest              = "BAD_REQUEST"
	CodeNotFound                = "NOT_FOUND"
)

// DataEnvelope is the wire shape of every successful JSON response.
type DataEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorEnvelope is the wire shape of every failed JSON response.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, body interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// WriteData writes a success envelope with the given status code
func WriteData(w http.ResponseWriter, status int, data interface{}) error {
	return WriteJSON(w, status, DataEnvelope{Success: true, Data: data})
}

// WriteErrorCode writes an error envelope with a stable code and message
func WriteErrorCode(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorEnvelope{Success: false, Error: message, Code: code})
}

// WriteAuthRequired writes the 401 the edge gateway sends API callers
// that present no valid session.
func WriteAuthRequired(w http.ResponseWriter) {
	WriteErrorCode(w, http.StatusUnauthorized, CodeAuthRequired, "Authentication required")
}

// WriteMissingAuth writes the 401 a handler guard sends when the
// propagated identity is absent.
func WriteMissingAuth(w http.ResponseWriter) {
	WriteErrorCode(w, http.StatusUnauthorized, CodeMissingAuth, "Authentication required")
}

// WriteMissingOrganization writes the 403 for authenticated callers with
// no active organization membership.
func WriteMissingOrganization(w http.ResponseWriter) {
	WriteErrorCode(w, http.StatusForbidden, CodeMissingOrganization, "No organization context found")
}

// WriteInsufficientPermissions writes the 403 for callers whose role does
// not grant the required permission.
func WriteInsufficientPermissions(w http.ResponseWriter) {
	WriteErrorCode(w, http.StatusForbidden, CodeInsufficientPermissions, "Insufficient permissions")
}

// WriteMiddlewareError writes the opaque 500 the edge gateway sends when
// resolution itself faults. The cause goes to the logs, never the caller.
func WriteMiddlewareError(w http.ResponseWriter) {
	WriteErrorCode(w, http.StatusInternalServerError, CodeMiddlewareError, "Internal server error")
}

// WriteInternalError writes an opaque 500 error envelope
func WriteInternalError(w http.ResponseWriter) {
	WriteErrorCode(w, http.StatusInternalServerError, CodeInternalError, "Internal server error")
}

// WriteBadRequest writes a 400 error envelope with the given message
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteErrorCode(w, http.StatusBadRequest, CodeBadRequest, message)
}

// WriteNotFound writes a 404 error envelope
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteErrorCode(w, http.StatusNotFound, CodeNotFound, message)
}

// SetNoStore marks a response as uncacheable by browsers and shared
// caches. Required on every response that varies with the caller's
// identity or organization.
func SetNoStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "private, no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}
