package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/confwatch/confwatch/pkg/errors"
)

func TestNotFoundError(t *testing.T) {
	err := errors.NewNotFoundError("conference", "ijcai2026")

	want := "conference with ID ijcai2026 not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if !stderrors.Is(err, errors.ErrNotFound) {
		t.Error("expected errors.Is(err, ErrNotFound) to be true")
	}

	if !errors.IsNotFound(err) {
		t.Error("expected IsNotFound to be true")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name  string
		err   *errors.ValidationError
		want  string
	}{
		{
			name: "with field",
			err:  errors.NewValidationError("deadline", "not-a-date", "must be YYYY-MM-DD"),
			want: "validation failed for field deadline: must be YYYY-MM-DD",
		},
		{
			name: "without field",
			err:  &errors.ValidationError{Message: "empty input"},
			want: "validation failed: empty input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.IsValidationError(tt.err) {
				t.Error("expected IsValidationError to be true")
			}
		})
	}
}

func TestWrapHelpers(t *testing.T) {
	cause := fmt.Errorf("permission denied")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "WrapIO",
			err:  errors.WrapIO("write", "conferences.json", cause),
			want: "IO error during write of conferences.json: permission denied",
		},
		{
			name: "WrapParse",
			err:  errors.WrapParse("json", "sources.json", cause),
			want: "parse error in json file sources.json: permission denied",
		},
		{
			name: "WrapResource",
			err:  errors.WrapResource("save", "report", "validation_report.json", cause),
			want: "failed to save report validation_report.json: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !stderrors.Is(tt.err, cause) {
				t.Error("expected wrapped error to unwrap to cause")
			}
		})
	}
}

func TestWrapHelpersNilPassthrough(t *testing.T) {
	if errors.WrapIO("read", "x", nil) != nil {
		t.Error("WrapIO(nil) should be nil")
	}
	if errors.WrapParse("json", "x", nil) != nil {
		t.Error("WrapParse(nil) should be nil")
	}
	if errors.WrapResource("load", "catalog", "", nil) != nil {
		t.Error("WrapResource(nil) should be nil")
	}
	if errors.WrapValidation("field", nil) != nil {
		t.Error("WrapValidation(nil) should be nil")
	}
}

func TestConfigError(t *testing.T) {
	cause := stderrors.New("no such file")
	err := errors.NewConfigError("sources", "cannot read config", cause)

	want := "configuration error in sources: cannot read config"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected ConfigError to unwrap to cause")
	}
}
