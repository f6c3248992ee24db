// Package shared holds the JSON plumbing common to every handler: request
// decoding, response writing, and the domain-code to HTTP-status mapping.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "caresure/pkg/domain-errors"
)

// ErrorResponse is the wire shape of every error the API returns.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// RespondJSON writes a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// DecodeJSON decodes a request body, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "malformed request body")
	}
	return nil
}

// RespondError maps a domain error to its HTTP status and writes it.
func RespondError(w http.ResponseWriter, err error) {
	var de *dErrors.Error
	if !errors.As(err, &de) {
		RespondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: string(dErrors.CodeInternal)})
		return
	}
	RespondJSON(w, StatusFromCode(de.Code), ErrorResponse{Error: string(de.Code), Message: de.Message})
}

// StatusFromCode maps domain error codes onto HTTP statuses. Workflow
// precondition failures use 412 so callers can distinguish them from plain
// input errors.
func StatusFromCode(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput, dErrors.CodeValidation,
		dErrors.CodeInvalidSchedule, dErrors.CodeInvalidReason:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeNotVerified:
		return http.StatusForbidden
	case dErrors.CodeConflict, dErrors.CodeDuplicateEndorsement, dErrors.CodeAlreadyApproved,
		dErrors.CodeAlreadyDisbursed:
		return http.StatusConflict
	case dErrors.CodePolicyInactive, dErrors.CodePolicyMismatch,
		dErrors.CodeClaimNotApproved, dErrors.CodeAppointmentNotVisited:
		return http.StatusPreconditionFailed
	case dErrors.CodeInsufficientFunds:
		return http.StatusPaymentRequired
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
