package calls

import "strings"

// TranscriptLine is one utterance of an in-progress or finished call.
type TranscriptLine struct {
	Index   int     `json:"index"`
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

type Speaker string

const (
	SpeakerAgent    Speaker = "agent"
	SpeakerCustomer Speaker = "customer"
)

// ClassifySpeaker decides which side of a raw transcript line spoke, from the
// label prefix the transcription service emits. Lines with an "agent:"/"ai:"
// prefix belong to the AI agent; "customer:"/"caller:" (and anything
// unlabeled) belong to the customer.
func ClassifySpeaker(raw string) Speaker {
	l := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(l, "agent:") || strings.HasPrefix(l, "ai:") {
		return SpeakerAgent
	}
	return SpeakerCustomer
}

// StripSpeakerLabel removes a recognized speaker prefix from a raw line.
func StripSpeakerLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	l := strings.ToLower(trimmed)
	for _, p := range []string{"agent:", "ai:", "customer:", "caller:"} {
		if strings.HasPrefix(l, p) {
			return strings.TrimSpace(trimmed[len(p):])
		}
	}
	return trimmed
}

// ParseTranscript converts raw lines into classified transcript lines,
// preserving order and skipping blanks.
func ParseTranscript(raw []string) []TranscriptLine {
	out := make([]TranscriptLine, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		out = append(out, TranscriptLine{
			Index:   len(out),
			Speaker: ClassifySpeaker(r),
			Text:    StripSpeakerLabel(r),
		})
	}
	return out
}
