package language

import "testing"

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	if len(all) != 11 {
		t.Fatalf("Expected 11 languages, got %d", len(all))
	}

	all[0].Name = "modified"
	if All()[0].Name != "English" {
		t.Error("Catalog was modified through returned slice")
	}
}

func TestByCode(t *testing.T) {
	tests := []struct {
		code      string
		wantName  string
		wantVoice string
		wantOK    bool
	}{
		{"en", "English", "Puck", true},
		{"JA", "Japanese", "Kore", true},
		{" fr ", "French", "Charon", true},
		{"ru", "Russian", "Fenrir", true},
		{"bg", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			l, ok := ByCode(tt.code)
			if ok != tt.wantOK {
				t.Fatalf("ByCode(%q) ok = %v, want %v", tt.code, ok, tt.wantOK)
			}
			if l.Name != tt.wantName || l.VoiceName != tt.wantVoice {
				t.Errorf("ByCode(%q) = %+v", tt.code, l)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	if l, err := Resolve("spanish"); err != nil || l.Code != "es" {
		t.Errorf("Resolve(spanish) = %+v, %v", l, err)
	}
	if l, err := Resolve("it"); err != nil || l.Name != "Italian" {
		t.Errorf("Resolve(it) = %+v, %v", l, err)
	}
	if _, err := Resolve("Klingon"); err == nil {
		t.Error("Expected error for unsupported language")
	}
}

func TestString(t *testing.T) {
	l, _ := ByCode("pt")
	if l.String() != "🇧🇷 Portuguese" {
		t.Errorf("String() = %q", l.String())
	}
}
