package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeOf(t *testing.T) {
	err := New(CodeMealAlreadyCooked, "meal already cooked")

	if CodeOf(err) != CodeMealAlreadyCooked {
		t.Errorf("expected %s, got %s", CodeMealAlreadyCooked, CodeOf(err))
	}

	// wrapped errors keep their code
	wrapped := fmt.Errorf("cook failed: %w", err)
	if !IsCode(wrapped, CodeMealAlreadyCooked) {
		t.Error("code must survive wrapping")
	}

	if CodeOf(errors.New("plain")) != CodeInternal {
		t.Error("plain errors default to INTERNAL")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{New(CodeMealNotFound, "no meal"), http.StatusNotFound},
		{New(CodeNotFound, "no recipe"), http.StatusNotFound},
		{New(CodeMealAlreadyCooked, "cooked"), http.StatusConflict},
		{New(CodeInsufficientIngredients, "short"), http.StatusConflict},
		{Validation("bad body"), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
