package checkpoint

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

var (
	errSentinel = errors.New("sentinel")
	errCause    = errors.New("cause")
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantNil bool
	}{
		{
			name:    "nil stays nil",
			err:     nil,
			wantNil: true,
		},
		{
			name: "error gets a location",
			err:  errCause,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := From(tt.err)
			if (got == nil) != tt.wantNil {
				t.Fatalf("From() = %v, wantNil %v", got, tt.wantNil)
			}
			if got == nil {
				return
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("From() = %v, does not match %v", got, tt.err)
			}
			if loc := Location(got); !strings.HasPrefix(loc, "checkpoint_test.go:") {
				t.Errorf("Location() = %q, want checkpoint_test.go:<line>", loc)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		cause   error
		err     error
		wantNil bool
	}{
		{
			name:    "nil cause",
			cause:   nil,
			err:     errSentinel,
			wantNil: true,
		},
		{
			name:  "cause and sentinel",
			cause: errCause,
			err:   errSentinel,
		},
		{
			name:  "nested checkpoint",
			cause: From(errCause),
			err:   errSentinel,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.cause, tt.err)
			if (got == nil) != tt.wantNil {
				t.Fatalf("Wrap() = %v, wantNil %v", got, tt.wantNil)
			}
			if got == nil {
				return
			}
			if !errors.Is(got, errSentinel) {
				t.Errorf("Wrap() = %v, does not match the sentinel", got)
			}
			if !errors.Is(got, errCause) {
				t.Errorf("Wrap() = %v, does not match the cause", got)
			}
			if !strings.Contains(got.Error(), "sentinel") || !strings.Contains(got.Error(), "cause") {
				t.Errorf("Wrap().Error() = %q, want both messages", got.Error())
			}
		})
	}
}

func TestWrap_As(t *testing.T) {
	pathErr := &fs.PathError{Op: "open", Path: "image.img", Err: errCause}
	err := Wrap(pathErr, errSentinel)

	var target *fs.PathError
	if !errors.As(err, &target) {
		t.Fatalf("errors.As() could not find the *fs.PathError in %v", err)
	}
	if target.Path != "image.img" {
		t.Errorf("errors.As() path = %v, want image.img", target.Path)
	}
}

func TestLocation_NoCheckpoint(t *testing.T) {
	if got := Location(errCause); got != "" {
		t.Errorf("Location() = %q, want empty", got)
	}
}
