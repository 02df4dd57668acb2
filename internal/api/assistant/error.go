package assistant

import (
	"JarvisGolang/pkg/response"
	"net/http"
)

var (
	ErrEmptyCommand          = response.NewError(http.StatusBadRequest, "command text is empty")
	ErrUnsupportedLanguage   = response.NewError(http.StatusBadRequest, "unsupported language")
	ErrClassifierUnavailable = response.NewError(http.StatusServiceUnavailable, "intent classifier unavailable")
	ErrTrainingDataEmpty     = response.NewError(http.StatusUnprocessableEntity, "no training samples for language")
	ErrTrainingFailed        = response.NewError(http.StatusInternalServerError, "failed to train classifier")
	ErrCommandFailed         = response.NewError(http.StatusInternalServerError, "failed to process command")
	ErrSampleFailed          = response.NewError(http.StatusInternalServerError, "failed to store training sample")
	ErrCommandLogsFailed     = response.NewError(http.StatusInternalServerError, "failed to load command logs")
)
