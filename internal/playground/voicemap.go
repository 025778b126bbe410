package playground

// backendVoices maps catalog voice ids to the concrete voice names the
// voice-testing backend expects. The mapping is fixed; unknown or empty ids
// fall back to DefaultBackendVoice so an invalid id never reaches the
// backend.
var backendVoices = map[string]string{
	"voice-aria":   "aria",
	"voice-zuri":   "zuri",
	"voice-liam":   "liam",
	"voice-amara":  "amara",
	"voice-kwame":  "kwame",
	"voice-nia":    "nia",
	"voice-jabari": "jabari",
}

const DefaultBackendVoice = "aria"

// BackendVoice resolves a catalog voice id to a backend voice name.
func BackendVoice(catalogID string) string {
	if name, ok := backendVoices[catalogID]; ok {
		return name
	}
	return DefaultBackendVoice
}
