package voices

import "strings"

// Voice is a read-only entry from the synthesized-speech catalog served by the
// core API. VoiceID is unique per provider.
type Voice struct {
	VoiceID   string `json:"voice_id"`
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	Language  string `json:"language"`
	SampleURL string `json:"sample_url,omitempty"`
}

// Catalog indexes voices for lookup and agent-configuration checks.
type Catalog struct {
	voices []Voice
	byID   map[string]Voice
}

func NewCatalog(vs []Voice) *Catalog {
	c := &Catalog{voices: vs, byID: make(map[string]Voice, len(vs))}
	for _, v := range vs {
		c.byID[v.VoiceID] = v
	}
	return c
}

func (c *Catalog) All() []Voice { return c.voices }

func (c *Catalog) Get(voiceID string) (Voice, bool) {
	v, ok := c.byID[voiceID]
	return v, ok
}

// KnownIDs returns the id set used by agents.Configured.
func (c *Catalog) KnownIDs() map[string]bool {
	out := make(map[string]bool, len(c.byID))
	for id := range c.byID {
		out[id] = true
	}
	return out
}

// FilterByLanguage returns voices whose language matches (case-insensitive
// prefix, so "en" matches "en-US" and "en-KE").
func (c *Catalog) FilterByLanguage(lang string) []Voice {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return c.voices
	}
	out := make([]Voice, 0, len(c.voices))
	for _, v := range c.voices {
		if strings.HasPrefix(strings.ToLower(v.Language), lang) {
			out = append(out, v)
		}
	}
	return out
}
