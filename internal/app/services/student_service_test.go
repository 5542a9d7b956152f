package services

import "testing"

func TestValidateDNI(t *testing.T) {
	tests := []struct {
		name    string
		dni     string
		wantErr bool
	}{
		{name: "seven digits", dni: "1234567"},
		{name: "eight digits", dni: "45123456"},
		{name: "too short", dni: "123456", wantErr: true},
		{name: "too long", dni: "123456789", wantErr: true},
		{name: "empty", dni: "", wantErr: true},
		{name: "leading zero seven digits", dni: "0123456", wantErr: true},
		{name: "leading zero eight digits", dni: "01234567", wantErr: true},
		{name: "letters", dni: "12a45678", wantErr: true},
		{name: "dots", dni: "12.345.678", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDNI(tt.dni)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDNI(%q) error = %v, wantErr %v", tt.dni, err, tt.wantErr)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase", in: "juan carlos", want: "Juan Carlos"},
		{name: "uppercase", in: "GARCIA LOPEZ", want: "Garcia Lopez"},
		{name: "mixed case", in: "mArIa", want: "Maria"},
		{name: "extra whitespace", in: "  ana   maria  ", want: "Ana Maria"},
		{name: "accented", in: "josé pérez", want: "José Pérez"},
		{name: "leading accent", in: "ángel", want: "Ángel"},
		{name: "single letter words", in: "o higgins", want: "O Higgins"},
		{name: "apostrophe", in: "o'brien", want: "O'Brien"},
		{name: "apostrophe uppercase", in: "D'ALESSANDRO", want: "D'Alessandro"},
		{name: "hyphen", in: "ana-maría", want: "Ana-María"},
		{name: "trailing apostrophe", in: "n'", want: "N'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleCase(tt.in); got != tt.want {
				t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNumberPrefix(t *testing.T) {
	tests := []struct {
		name        string
		entryYear   int
		programCode string
		want        string
	}{
		{name: "regular code", entryYear: 2024, programCode: "ING", want: "2024ING"},
		{name: "lowercase code", entryYear: 2024, programCode: "ing", want: "2024ING"},
		{name: "long code truncated", entryYear: 2025, programCode: "INFO", want: "2025INF"},
		{name: "short code kept", entryYear: 2025, programCode: "MA", want: "2025MA"},
		{name: "no program", entryYear: 2024, programCode: "", want: "2024GEN"},
		{name: "blank program", entryYear: 2024, programCode: "   ", want: "2024GEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NumberPrefix(tt.entryYear, tt.programCode); got != tt.want {
				t.Errorf("NumberPrefix(%d, %q) = %q, want %q", tt.entryYear, tt.programCode, got, tt.want)
			}
		})
	}
}

func TestNextStudentNumber(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		last   string
		want   string
	}{
		{name: "first of sequence", prefix: "2024ING", last: "", want: "2024ING001"},
		{name: "increments last", prefix: "2024ING", last: "2024ING007", want: "2024ING008"},
		{name: "crosses padding width", prefix: "2024ING", last: "2024ING099", want: "2024ING100"},
		{name: "beyond three digits", prefix: "2024ING", last: "2024ING999", want: "2024ING1000"},
		{name: "foreign prefix ignored", prefix: "2024ING", last: "2023ING042", want: "2024ING001"},
		{name: "unparsable suffix restarts", prefix: "2024ING", last: "2024INGX", want: "2024ING001"},
		{name: "fallback prefix", prefix: "2024GEN", last: "2024GEN011", want: "2024GEN012"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextStudentNumber(tt.prefix, tt.last); got != tt.want {
				t.Errorf("NextStudentNumber(%q, %q) = %q, want %q", tt.prefix, tt.last, got, tt.want)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "simple", value: "Juan"},
		{name: "compound", value: "Maria Jose"},
		{name: "apostrophe", value: "O'Brien"},
		{name: "hyphen", value: "Pérez-Gómez"},
		{name: "too short", value: "J", wantErr: true},
		{name: "digits", value: "Juan2", wantErr: true},
		{name: "symbols", value: "Juan!", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateName(tt.value, "first name")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateName(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}
