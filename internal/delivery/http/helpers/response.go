package helpers

import (
	"encoding/json"
	"net/http"
)

// Client-facing error messages. Internal causes are logged, never sent.
const (
	MsgUnauthorized        = "Unauthorized"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgUsernameTaken       = "Username already exists"
	MsgInvitationNotFound  = "Invitation not found"
	MsgSettingNotFound     = "Setting not found"
	MsgImageRequired       = "Image is required"
	MsgOneImageOnly        = "Only one image may be uploaded"
	MsgUsernameRequired    = "Username is required"
	MsgSettingKeyRequired  = "Key is required"
	MsgMethodNotAllowed    = "Method not allowed"
	MsgOnlyImagesAllowed   = "Only image files are allowed"
	MsgImageTooLarge       = "Image must be 5MB or smaller"
	MsgSampleImageNotFound = "Sample image not found"
	MsgImageFileNotFound   = "Image file not found"
	MsgTooManyRequests     = "Too many requests"
	MsgNotFound            = "Not found"
	MsgInternalServerError = "Internal server error"
	MsgDatabaseUnavailable = "Database unavailable"
	MsgInvalidRequestBody  = "Invalid request body"
	MsgRequestBodyTooLarge = "Request body too large"
)

// ErrorResponse is the body of every error response.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is returned by admin actions that have no resource to return.
// swagger:model SuccessResponse
type SuccessResponse struct {
	Success bool `json:"success"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode and encodes data.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError writes statusCode with an ErrorResponse carrying message.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteSuccess writes 'statusCode' with {"success": true}.
func WriteSuccess(w http.ResponseWriter, statusCode int) {
	WriteJSON(w, statusCode, SuccessResponse{Success: true})
}
