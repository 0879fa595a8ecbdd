package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("commit: %w", ErrConflict("time_conflict", "slot taken"))
	if KindOf(err) != KindConflict {
		t.Fatalf("expected conflict kind, got %q", KindOf(err))
	}
	if !IsBusiness(err, "time_conflict") {
		t.Fatal("expected IsBusiness to see wrapped code")
	}
	if KindOf(errors.New("boom")) != "" {
		t.Fatal("plain errors have no kind")
	}
}

func TestIsExclusionConflict(t *testing.T) {
	if !IsExclusionConflict(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})) {
		t.Fatal("expected 23P01 to be detected")
	}
	if IsExclusionConflict(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("unique violation is not an exclusion conflict")
	}
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrValidation("invalid_date", "bad date"), http.StatusBadRequest, "invalid_date"},
		{ErrNotFound("service_not_found", "no such service"), http.StatusNotFound, "service_not_found"},
		{ErrShiftViolation("outside_shift", "not working"), http.StatusUnprocessableEntity, "outside_shift"},
		{ErrConflict("time_conflict", "taken"), http.StatusConflict, "time_conflict"},
		{errors.New("db down"), http.StatusInternalServerError, "fallback"},
	}

	for _, tc := range cases {
		rw := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rw)
		Respond(c, tc.err, "fallback")

		if rw.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, rw.Code)
		}
		var body HTTPError
		if err := json.Unmarshal(rw.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Code != tc.code {
			t.Fatalf("expected code %s, got %s", tc.code, body.Code)
		}
	}
}
