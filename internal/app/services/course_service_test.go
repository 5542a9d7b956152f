package services

import "testing"

func TestCodeBaseFromName(t *testing.T) {
	tests := []struct {
		name       string
		courseName string
		want       string
	}{
		{name: "initials with roman numeral", courseName: "Análisis Matemático I", want: "AM1"},
		{name: "higher roman numeral", courseName: "Análisis Matemático III", want: "AM3"},
		{name: "stopwords skipped", courseName: "Introducción a la Programación", want: "IP"},
		{name: "del skipped", courseName: "Historia del Arte", want: "HA"},
		{name: "roman after stopword", courseName: "Base de Datos II", want: "BD2"},
		{name: "single word first three letters", courseName: "Matemática", want: "MAT"},
		{name: "single word with accent", courseName: "Álgebra", want: "ÁLG"},
		{name: "short single word", courseName: "Uml", want: "UML"},
		{name: "stopword then single word", courseName: "La Química", want: "QUÍ"},
		{name: "single word with roman", courseName: "Física II", want: "F2"},
		{name: "punctuation ignored", courseName: "Química (Orgánica)", want: "QO"},
		{name: "empty name", courseName: "", want: "MAT"},
		{name: "only digits", courseName: "1024", want: "MAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codeBaseFromName(tt.courseName); got != tt.want {
				t.Errorf("codeBaseFromName(%q) = %q, want %q", tt.courseName, got, tt.want)
			}
		})
	}
}

func TestStripNonLetters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "DATOS", want: "DATOS"},
		{name: "parentheses", in: "(ORGÁNICA)", want: "ORGÁNICA"},
		{name: "digits dropped", in: "TP1", want: "TP"},
		{name: "all symbols", in: "123-!", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripNonLetters(tt.in); got != tt.want {
				t.Errorf("stripNonLetters(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
