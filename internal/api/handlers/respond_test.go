package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quillpad/quillpad-be/internal/services"
)

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrAlreadyLiked, http.StatusBadRequest},
		{services.ErrNotYetLiked, http.StatusBadRequest},
		{services.ErrEmailTaken, http.StatusBadRequest},
		{services.ErrConflict, http.StatusConflict},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("database on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondServiceError(rec, tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
