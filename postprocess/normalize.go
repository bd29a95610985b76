package postprocess

import (
	"fmt"
	"strings"
)

// Emotion labels map to display glyphs; neutral and unknown render as nothing.
var emotionGlyphs = map[string]string{
	"HAPPY":       "😊",
	"SAD":         "😔",
	"ANGRY":       "😡",
	"NEUTRAL":     "",
	"FEARFUL":     "😰",
	"DISGUSTED":   "🤢",
	"SURPRISED":   "😮",
	"EMO_UNKNOWN": "",
}

// Sound-event labels map to display glyphs; plain speech renders as nothing.
var eventGlyphs = map[string]string{
	"BGM":       "🎼",
	"Speech":    "",
	"Applause":  "👏",
	"Laughter":  "😀",
	"Cry":       "😭",
	"Sneeze":    "🤧",
	"Breath":    "",
	"Cough":     "🤧",
	"Event_UNK": "",
}

// Normalize converts a raw tagged hypothesis into clean display text.
// It is total over well-formed tagged sequences; an unterminated tag opener
// returns an error. Untagged text passes through unchanged apart from
// surrounding whitespace.
func Normalize(raw string) (string, error) {
	if !strings.Contains(raw, "<|") {
		return strings.TrimSpace(raw), nil
	}

	var out strings.Builder
	rest := raw
	for {
		start := strings.Index(rest, "<|")
		if start == -1 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:start])

		end := strings.Index(rest[start+2:], "|>")
		if end == -1 {
			return "", fmt.Errorf("unterminated tag at offset %d", len(raw)-len(rest)+start)
		}
		label := rest[start+2 : start+2+end]
		out.WriteString(glyphFor(label))
		rest = rest[start+2+end+2:]
	}

	return strings.TrimSpace(out.String()), nil
}

// glyphFor maps a tag label to its display replacement. Labels outside the
// known grammar (language markers, itn markers, future additions) are
// stripped.
func glyphFor(label string) string {
	if g, ok := emotionGlyphs[label]; ok {
		return g
	}
	if g, ok := eventGlyphs[label]; ok {
		return g
	}
	return ""
}
