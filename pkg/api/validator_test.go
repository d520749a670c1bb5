package api

import (
	"errors"
	"strings"
	"testing"
)

func TestGeneratePayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload GeneratePayload
		wantErr bool
	}{
		{"Defaults", GeneratePayload{}, false},
		{"Explicit size", GeneratePayload{Width: 80, Height: 50, Level: 2}, false},
		{"Negative width", GeneratePayload{Width: -1}, true},
		{"Too large", GeneratePayload{Width: MaxDimension + 1, Height: 10}, true},
		{"Level too deep", GeneratePayload{Level: MaxLevel + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClientCommand_Validate(t *testing.T) {
	for _, action := range []string{ActionInit, ActionReset, ActionDescend} {
		if err := (ClientCommand{Action: action}).Validate(); err != nil {
			t.Errorf("Action %s should be valid, got %v", action, err)
		}
	}
	if err := (ClientCommand{}).Validate(); err == nil {
		t.Error("Empty action should be rejected")
	}
	if err := (ClientCommand{Action: "MOVE"}).Validate(); err == nil {
		t.Error("Unknown action should be rejected")
	}
}

func TestClientCommand_ValidateToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"Empty", "", false},
		{"Regular", "alice", false},
		{"At limit", strings.Repeat("x", MaxTokenLength), false},
		{"Over limit", strings.Repeat("x", MaxTokenLength+45), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := ClientCommand{Token: tt.token, Action: ActionInit}
			err := cmd.ValidateToken()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(cmd.Validate(), ErrTokenTooLong) {
				t.Errorf("Validate() should reject the token too, got %v", cmd.Validate())
			}
		})
	}
}
