package validators

import (
	"errors"
	"testing"

	"github.com/bluenote/backend/internal/models"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		input   interface{}
		wantErr string
	}{
		{"valid comment", &models.CreateCommentRequest{ArticleID: "a", Content: "c"}, ""},
		{"missing article id", &models.CreateCommentRequest{Content: "c"}, "Missing article id"},
		{"missing code id", &models.LoginRequest{Username: "u", Password: "p", Code: "1234"}, "Missing id"},
		{"missing title", &models.CreateArticleRequest{Category: "c"}, "Missing title"},
		{"long password", &models.SignupRequest{Username: "u", Password: string(make([]byte, 73)), CodeID: "i", Code: "1"}, "password must be at most 72 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Message != tt.wantErr {
				t.Errorf("expected %q, got %q", tt.wantErr, verr.Message)
			}
		})
	}
}
