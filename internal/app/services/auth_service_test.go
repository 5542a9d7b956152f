package services

import (
	"testing"

	"github.com/dariolp/escuela/internal/app/models"
	"github.com/dariolp/escuela/internal/pkg/auth"
)

func TestCredentialsMatch(t *testing.T) {
	hashed, err := auth.HashPassword("secreto.123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	user := &models.User{DNI: "30123456", Password: hashed}

	tests := []struct {
		name     string
		dni      string
		password string
		want     bool
	}{
		{name: "both factors match", dni: "30123456", password: "secreto.123", want: true},
		{name: "wrong dni", dni: "30123457", password: "secreto.123"},
		{name: "wrong password", dni: "30123456", password: "otraclave"},
		{name: "both wrong", dni: "30123457", password: "otraclave"},
		{name: "empty password", dni: "30123456", password: ""},
		{name: "empty dni", dni: "", password: "secreto.123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := credentialsMatch(user, tt.dni, tt.password); got != tt.want {
				t.Errorf("credentialsMatch(dni=%q) = %v, want %v", tt.dni, got, tt.want)
			}
		})
	}
}
