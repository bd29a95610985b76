package postprocess

import "testing"

func TestNormalize_PlainText(t *testing.T) {
	got, err := Normalize("你好世界")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "你好世界" {
		t.Errorf("expected identity on plain text, got %q", got)
	}
}

func TestNormalize_LanguageAndControlTags(t *testing.T) {
	got, err := Normalize("<|zh|><|NEUTRAL|><|Speech|><|withitn|>你好世界")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "你好世界" {
		t.Errorf("expected control tags stripped, got %q", got)
	}
}

func TestNormalize_EmotionGlyph(t *testing.T) {
	got, err := Normalize("<|en|><|HAPPY|><|Speech|><|woitn|>great to see you")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "😊great to see you" {
		t.Errorf("expected emotion glyph, got %q", got)
	}
}

func TestNormalize_EventGlyph(t *testing.T) {
	got, err := Normalize("<|zh|><|NEUTRAL|><|BGM|>背景音乐")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "🎼背景音乐" {
		t.Errorf("expected event glyph, got %q", got)
	}
}

func TestNormalize_UnknownTagStripped(t *testing.T) {
	got, err := Normalize("<|something_new|>text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "text" {
		t.Errorf("expected unknown tag stripped, got %q", got)
	}
}

func TestNormalize_TagsBetweenWords(t *testing.T) {
	got, err := Normalize("hello <|Laughter|> world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello 😀 world" {
		t.Errorf("got %q", got)
	}
}

func TestNormalize_UnterminatedTag(t *testing.T) {
	if _, err := Normalize("<|zh|><|NEUTRAL text"); err == nil {
		t.Error("expected error for unterminated tag")
	}
}

func TestNormalize_Empty(t *testing.T) {
	got, err := Normalize("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestNormalize_OnlyTags(t *testing.T) {
	got, err := Normalize("<|zh|><|NEUTRAL|><|Speech|><|woitn|>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output for tags-only input, got %q", got)
	}
}

func TestNormalize_NoMarkerSurvives(t *testing.T) {
	inputs := []string{
		"<|zh|><|HAPPY|><|Speech|><|withitn|>今天天气真好",
		"<|en|><|SAD|><|Cry|><|woitn|>oh no",
		"<|nospeech|>",
	}
	for _, in := range inputs {
		got, err := Normalize(in)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", in, err)
		}
		if containsMarker(got) {
			t.Errorf("marker survived in %q", got)
		}
	}
}

func containsMarker(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '<' && s[i+1] == '|' {
			return true
		}
	}
	return false
}
