// Package postprocess normalizes raw SenseVoice model output into display
// text.
//
// SenseVoice hypotheses embed inline control tags alongside the literal
// transcript: language markers like <|zh|>, emotion labels like <|HAPPY|>,
// sound-event labels like <|BGM|>, and the inverse-text-normalization
// markers <|withitn|> and <|woitn|>. Normalize interprets emotion and event
// tags as display glyphs and strips everything else, guaranteeing that no
// <|...|> marker survives in the output.
package postprocess
