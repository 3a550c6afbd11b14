package kitchenserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/itayost/AmosKitchen-sub001/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError returns an RFC 7807 response for the given status and error.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// parseUUIDParam extracts a UUID path parameter, responding 400 on failure.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.
			WithDetail("path parameter is not a valid UUID").
			WithExtension("parameter", name))
		return uuid.Nil, false
	}
	return id, true
}
