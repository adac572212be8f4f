package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNewAndIs(t *testing.T) {
	err := New(ErrCodeNodeNotFound, "no node with id %q", "btn")
	if err.Error() != `NODE_NOT_FOUND: no node with id "btn"` {
		t.Errorf("Error() = %q", err.Error())
	}
	if !Is(err, ErrCodeNodeNotFound) {
		t.Error("Is(err, NODE_NOT_FOUND) = false")
	}
	if Is(err, ErrCodeFrameNotFound) {
		t.Error("Is matched a different code")
	}
}

func TestWrapPreservesChain(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "store snapshot %q", "v1")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause lost from the chain")
	}
	if GetCode(err) != ErrCodeInternal {
		t.Errorf("GetCode = %q, want INTERNAL_ERROR", GetCode(err))
	}

	// A further fmt wrap still exposes the code via As.
	outer := fmt.Errorf("request failed: %w", err)
	if GetCode(outer) != ErrCodeInternal {
		t.Errorf("GetCode through fmt wrap = %q", GetCode(outer))
	}
	if !Is(outer, ErrCodeInternal) {
		t.Error("Is through fmt wrap = false")
	}
}

func TestGetCodePlainError(t *testing.T) {
	if GetCode(stderrors.New("plain")) != "" {
		t.Error("plain error should yield empty code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("plain error should not match any code")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "duplicate id %q", "a")
	if got := UserMessage(err); got != `duplicate id "a"` {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("raw")); got != "raw" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
