package voices

import "testing"

func testCatalog() *Catalog {
	return NewCatalog([]Voice{
		{VoiceID: "voice-aria", Name: "Aria", Provider: "elevenlabs", Language: "en-US"},
		{VoiceID: "voice-zuri", Name: "Zuri", Provider: "elevenlabs", Language: "sw-KE"},
		{VoiceID: "voice-liam", Name: "Liam", Provider: "azure", Language: "en-GB"},
	})
}

func TestCatalogGet(t *testing.T) {
	c := testCatalog()
	v, ok := c.Get("voice-zuri")
	if !ok || v.Name != "Zuri" {
		t.Fatalf("get voice-zuri: %+v ok=%v", v, ok)
	}
	if _, ok := c.Get("nope"); ok {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestCatalogKnownIDs(t *testing.T) {
	ids := testCatalog().KnownIDs()
	if len(ids) != 3 || !ids["voice-aria"] {
		t.Fatalf("known ids: %+v", ids)
	}
}

func TestFilterByLanguage(t *testing.T) {
	c := testCatalog()
	if got := c.FilterByLanguage("en"); len(got) != 2 {
		t.Fatalf("en: expected 2, got %d", len(got))
	}
	if got := c.FilterByLanguage("sw-KE"); len(got) != 1 || got[0].VoiceID != "voice-zuri" {
		t.Fatalf("sw-KE: got %+v", got)
	}
	if got := c.FilterByLanguage(""); len(got) != 3 {
		t.Fatalf("empty filter should return all")
	}
}
