package gateway

import (
	"errors"
	"fmt"
	"testing"
)

func TestLookupErrorIs(t *testing.T) {
	cause := errors.New("boom")
	var err error = &LookupError{Term: "hola", Err: cause}

	if !errors.Is(err, ErrLookup) {
		t.Error("Expected LookupError to match ErrLookup")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected LookupError to unwrap to its cause")
	}

	wrapped := fmt.Errorf("search: %w", err)
	var le *LookupError
	if !errors.As(wrapped, &le) || le.Term != "hola" {
		t.Errorf("errors.As failed on wrapped LookupError: %v", wrapped)
	}

	if err.Error() != `lookup of "hola" failed: boom` {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestDataURI(t *testing.T) {
	if got := dataURI("", "AAAA"); got != "data:image/png;base64,AAAA" {
		t.Errorf("dataURI default = %s", got)
	}
	if got := dataURI("image/jpeg", "BBBB"); got != "data:image/jpeg;base64,BBBB" {
		t.Errorf("dataURI jpeg = %s", got)
	}
}
