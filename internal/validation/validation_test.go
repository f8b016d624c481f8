package validation

import (
	"testing"
)

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2025-06-19", wantErr: false},
		{name: "valid leap day", input: "2024-02-29", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "month only", input: "2025-06", wantErr: true},
		{name: "not a real date", input: "2025-02-30", wantErr: true},
		{name: "wrong separator", input: "2025/06/19", wantErr: true},
		{name: "unpadded day", input: "2025-6-9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMonth(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid month", input: "2025-01", wantErr: false},
		{name: "december", input: "2025-12", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "month zero", input: "2025-00", wantErr: true},
		{name: "month thirteen", input: "2025-13", wantErr: true},
		{name: "full date", input: "2025-06-19", wantErr: true},
		{name: "unpadded", input: "2025-6", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMonth(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMonth(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidateMonth("nope")
	var vErr Error
	if e, ok := err.(Error); ok {
		vErr = e
	} else {
		t.Fatalf("expected validation.Error, got %T", err)
	}
	if vErr.Field != "month" {
		t.Errorf("Field = %q, want %q", vErr.Field, "month")
	}
	if vErr.Error() != "month: month must be YYYY-MM" {
		t.Errorf("unexpected message: %q", vErr.Error())
	}
}
