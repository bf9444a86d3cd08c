package httperr

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsBusinessWrapped(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrBusiness("time_conflict"))
	if !IsBusiness(err, "time_conflict") {
		t.Fatal("expected wrapped business error to match")
	}
	if IsBusiness(err, "too_soon") {
		t.Fatal("unexpected match for different code")
	}
	code, ok := BusinessCode(err)
	if !ok || code != "time_conflict" {
		t.Fatalf("unexpected code %q ok=%v", code, ok)
	}
}

func TestIsExclusionConflict(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"exclusion", &pgconn.PgError{Code: "23P01"}, true},
		{"unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"fk", &pgconn.PgError{Code: "23503"}, false},
		{"plain", fmt.Errorf("boom"), false},
	}
	for _, tc := range cases {
		if got := IsExclusionConflict(tc.err); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Conflict(c, "time_conflict", "Conflito de horário.")

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	var body HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != "time_conflict" {
		t.Fatalf("unexpected code %q", body.Code)
	}
}
