package adaptor

import (
	"net/http"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps a service error onto its HTTP response by kind.
func writeServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	kind := apperror.KindOf(err)
	msg := apperror.Message(err)

	if kind == apperror.KindInternal {
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	log.Warn(operation+" rejected",
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("kind", string(kind)))

	switch kind {
	case apperror.KindValidation:
		utils.ResponseBadRequest(w, msg, nil)
	case apperror.KindNotFound:
		utils.ResponseNotFound(w, msg)
	case apperror.KindConflict, apperror.KindStale:
		utils.ResponseConflict(w, msg)
	case apperror.KindPayment:
		utils.ResponsePaymentRequired(w, msg)
	case apperror.KindForbidden:
		utils.ResponseForbidden(w, msg)
	case apperror.KindUnauthorized:
		utils.ResponseUnauthorized(w, msg)
	default:
		utils.ResponseJSON(w, kind.HTTPStatus(), false, msg, nil, nil)
	}
}

// actorFromRequest reads the caller placed in the context by the auth middleware.
func actorFromRequest(r *http.Request) (usecase.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return usecase.Actor{UserID: userID, Role: entity.UserRole(role)}, true
}

func paginationFromQuery(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
