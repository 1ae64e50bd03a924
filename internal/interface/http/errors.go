package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rewearhq/rewear-backend/internal/domain/errs"
	"github.com/rewearhq/rewear-backend/pkg/response"
)

// writeDomainError maps a service error onto the wire. Expected domain
// errors keep their message; anything unknown is logged with detail and
// reported generically.
func writeDomainError(c *gin.Context, logger *logrus.Logger, err error) {
	status := errs.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		if err != errs.ErrMailUnavailable {
			msg = "internal server error"
		}
	}
	response.Error(c, status, msg, nil)
}
