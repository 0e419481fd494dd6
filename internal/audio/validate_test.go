package audio

import (
	"strings"
	"testing"
)

func TestValidateSpeechText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid word",
			text:    "metro",
			wantErr: false,
		},
		{
			name:    "valid non-latin sentence",
			text:    "Здравей, как си?",
			wantErr: false,
		},
		{
			name:    "valid Japanese",
			text:    "地下鉄はどこですか",
			wantErr: false,
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "whitespace only",
			text:    "   \t\n",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "too long",
			text:    strings.Repeat("a", MaxSpeechLength+1),
			wantErr: true,
			errMsg:  "text too long",
		},
		{
			name:    "exactly max runes",
			text:    strings.Repeat("я", MaxSpeechLength),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpeechText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSpeechText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidateSpeechText() error = %v, want error containing %v", err, tt.errMsg)
			}
		})
	}
}
