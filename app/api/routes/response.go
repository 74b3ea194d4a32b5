package routes

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/taskmanager/pkg/constant"
	"github.com/taskmanager/pkg/dtos"
	"github.com/taskmanager/pkg/errutil"
	"github.com/taskmanager/pkg/middleware"
)

func success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dtos.Response{
		Status:  constant.STATUS_SUCCESS,
		Message: message,
		Data:    data,
	})
}

// fail converts a flow error into the failure envelope. Internal errors are logged, never echoed.
func fail(c *gin.Context, err error) {
	if errutil.IsCode(err, errutil.CodeInternal) || errutil.IsCode(err, errutil.CodeDelivery) || !errutil.IsKnown(err) {
		errutil.LogError(c.Request.Context(), slog.Default(), c.Request.Method+" "+c.FullPath(), err)
	}
	c.JSON(errutil.HTTPStatus(err), dtos.Response{
		Status:  constant.STATUS_FAIL,
		Message: errutil.Message(err),
	})
}

// bindFail reports a request that did not bind onto its DTO.
func bindFail(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dtos.Response{
		Status:  constant.STATUS_FAIL,
		Message: bindingMessage(err),
	})
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Sprintf("%s failed on the '%s=%s' rule", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return middleware.BODY_TOO_LARGE
	}
	return constant.INVALID_REQUEST
}
