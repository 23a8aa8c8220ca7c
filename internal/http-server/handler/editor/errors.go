package editor

import (
	"context"
	"errors"
	"net/http"

	"creative-editor/internal/client/api"
	core "creative-editor/internal/editor"
	editor_uc "creative-editor/internal/usecase/editor"
)

var (
	ErrInvalidBody   = errors.New("invalid request body")
	ErrInvalidUpload = errors.New("invalid logo upload")
	ErrInvalidQuery  = errors.New("invalid query parameter")
)

// statusFor maps an error onto the HTTP status and the message shown to the user.
// Client errors of the creative API keep their status; server errors become 502.
func statusFor(err error) (int, string) {
	var httpErr *api.HTTPError

	switch {
	case errors.Is(err, editor_uc.ErrSessionNotFound),
		errors.Is(err, core.ErrOverlayNotFound),
		errors.Is(err, editor_uc.ErrPreviewNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, ErrInvalidBody),
		errors.Is(err, ErrInvalidUpload),
		errors.Is(err, ErrInvalidQuery),
		errors.Is(err, editor_uc.ErrMissingTarget),
		errors.Is(err, editor_uc.ErrNoFormats),
		errors.Is(err, api.ErrEmptyUpload),
		errors.Is(err, core.ErrEmptyText),
		errors.Is(err, core.ErrUnknownTextStyle),
		errors.Is(err, core.ErrUnknownAdjustment),
		errors.Is(err, core.ErrValueOutOfRange),
		errors.Is(err, core.ErrInvalidContainer):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, core.ErrSubmitInFlight):
		return http.StatusConflict, err.Error()

	case errors.Is(err, core.ErrNoAsset),
		errors.Is(err, core.ErrNoChanges),
		errors.Is(err, core.ErrUnresolvedLogo),
		errors.Is(err, core.ErrInvalidPayload),
		errors.Is(err, editor_uc.ErrNoResults),
		errors.Is(err, api.ErrJobFailed):
		return http.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, api.ErrUnauthorized), errors.Is(err, api.ErrNoToken):
		return http.StatusUnauthorized, api.ErrUnauthorized.Error()

	case errors.Is(err, api.ErrNetwork):
		return http.StatusServiceUnavailable, api.ErrNetwork.Error()

	case errors.Is(err, editor_uc.ErrImageFileNotFound):
		return http.StatusBadGateway, editor_uc.ErrImageFileNotFound.Error()

	case errors.Is(err, api.ErrImageTooLarge):
		return http.StatusBadGateway, api.ErrImageTooLarge.Error()

	case errors.As(err, &httpErr):
		if code := api.StatusCode(err); code >= 400 && code < 500 {
			return code, httpErr.UserMessage()
		}
		return http.StatusBadGateway, httpErr.UserMessage()

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	}
	return http.StatusInternalServerError, "internal error"
}
