package db

import "testing"

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name     string
		primary  string
		fallback string
		want     string
	}{
		{"tag wins over title", "AUD", "Audio Tests", "AUD"},
		{"falls back to title", "", "Audio Tests", "AUDIO_TESTS"},
		{"whitespace tag falls back", "   ", "Audio Tests", "AUDIO_TESTS"},
		{"symbols collapse to single underscores", "SIM / Host!", "", "SIM_HOST"},
		{"leading and trailing symbols trimmed", "--GTS--", "", "GTS"},
		{"lowercase uppercased", "security tot", "", "SECURITY_TOT"},
		{"digits kept", "Android 13+", "", "ANDROID_13"},
		{"non-ascii replaced", "特殊 Cases", "", "CASES"},
		{"both blank", "", "", ""},
		{"only symbols", "!!!", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveKey(tt.primary, tt.fallback); got != tt.want {
				t.Errorf("DeriveKey(%q, %q) = %q, want %q", tt.primary, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	first := DeriveKey("CameraITS / Audio / Sensor", "CTS Verifier")
	second := DeriveKey("CameraITS / Audio / Sensor", "CTS Verifier")
	if first != second {
		t.Fatalf("same inputs produced %q then %q", first, second)
	}
	if first != "CAMERAITS_AUDIO_SENSOR" {
		t.Errorf("DeriveKey = %q, want CAMERAITS_AUDIO_SENSOR", first)
	}
}
