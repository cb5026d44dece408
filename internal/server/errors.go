package server

import (
	"fmt"
	"net/http"

	"agartha/internal/shared"
)

// apiError is a failure that is reported to the client as is.
type apiError struct {
	Status  int
	Message string
	Code    int
}

func (e *apiError) Error() string { return e.Message }

func (e *apiError) response() shared.ErrorResponse {
	return shared.ErrorResponse{Error: e.Message, ErrorCode: e.Code}
}

func badRequest(msg string) error {
	return &apiError{Status: http.StatusBadRequest, Message: msg}
}

func notFound(msg string) error {
	return &apiError{Status: http.StatusNotFound, Message: msg}
}

var (
	errPractitionerID = badRequest(shared.MsgPractitionerIDIncorrect)
	errNotCreator     = badRequest(shared.MsgNotCreatorOfCircle)
	errOutOfFunds     = badRequest(shared.MsgPractitionerOutOfFunds)
	errNotPositive    = badRequest(shared.MsgNegativeIntegerValue)
	errEmptySession   = badRequest(shared.MsgDisciplineIntentionEmpty)
	errCircleData     = &apiError{Status: http.StatusBadRequest, Message: shared.MsgInsufficientDataCreateCircle, Code: shared.ErrorCodeInsufficientCircle}
)

func errCircleMinPoints(min int64) error {
	return &apiError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("Practitioner cannot create circle with less than %d contribution points", min),
		Code:    shared.ErrorCodeCircleMinPoints,
	}
}
