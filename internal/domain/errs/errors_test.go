package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rewearhq/rewear-backend/internal/domain/errs"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.ErrUserNotFound, http.StatusNotFound},
		{errs.ErrItemNotFound, http.StatusNotFound},
		{errs.ErrEmailTaken, http.StatusBadRequest},
		{errs.ErrInvalidCredentials, http.StatusBadRequest},
		{errs.ErrInvalidOTP, http.StatusBadRequest},
		{errs.ErrItemNotApproved, http.StatusBadRequest},
		{errs.ErrItemNotAvailable, http.StatusBadRequest},
		{errs.ErrSelfRedemption, http.StatusBadRequest},
		{errs.ErrInsufficientPoints, http.StatusBadRequest},
		{errs.ErrNotAuthorized, http.StatusForbidden},
		{errs.ErrMailUnavailable, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, errs.HTTPStatus(c.err), c.err.Error())
	}
}

func TestHTTPStatusWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("redeeming: %w", errs.ErrItemNotAvailable)
	assert.Equal(t, http.StatusBadRequest, errs.HTTPStatus(wrapped))
}
