package errors

import (
	"testing"
)

func TestValidateDatasetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "sales", false},
		{"valid with dash", "sales-2024", false},
		{"valid with spaces", "Market share by region", false},
		{"valid with slash", "emea/q3", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatasetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDatasetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDataset) {
				t.Errorf("ValidateDatasetName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidDataset)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "chart.svg", false},
		{"nested", "charts/2024/chart.svg", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secret", true},
		{"backslash", "charts\\chart.svg", true},
		{"control", "chart\x07.svg", true},
		{"too long", string(make([]byte, 501)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/data.csv", false},
		{"http", "http://example.com/data.csv", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#01b8aa", false},
		{"#ABCDEF", false},
		{"#fff", false},

		{"", true},
		{"01b8aa", true},
		{"#01b8a", true},
		{"#gggggg", true},
		{"red", true},
		{"#aabbccdd", true},
		{"#0 1b8a", true},
		{"#-1-2-3", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSortDirection(t *testing.T) {
	for _, ok := range []string{"", "none", "asc", "DESC", "descending"} {
		if err := ValidateSortDirection(ok); err != nil {
			t.Errorf("ValidateSortDirection(%q) = %v, want nil", ok, err)
		}
	}
	err := ValidateSortDirection("sideways")
	if !Is(err, ErrCodeInvalidOption) {
		t.Errorf("ValidateSortDirection(sideways) = %v, want %s", err, ErrCodeInvalidOption)
	}
}

func TestValidateFormat(t *testing.T) {
	supported := []string{"svg", "json"}
	if err := ValidateFormat("svg", supported); err != nil {
		t.Errorf("ValidateFormat(svg) = %v", err)
	}
	if err := ValidateFormat("gif", supported); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(gif) = %v, want %s", err, ErrCodeInvalidFormat)
	}
}

func TestValidateChartID(t *testing.T) {
	if err := ValidateChartID("6f1c2a7e-3f1d-4c4b-9a57-0f3f1c7f2b10"); err != nil {
		t.Errorf("ValidateChartID(valid) = %v", err)
	}
	for _, bad := range []string{"", "not-a-uuid", "../../etc"} {
		if err := ValidateChartID(bad); err == nil {
			t.Errorf("ValidateChartID(%q) = nil, want error", bad)
		}
	}
}
