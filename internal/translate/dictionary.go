package translate

// dictEntry is one English → Tamil substitution. Entries are held in a
// slice, not a map: the fallback path must apply them in a fixed order to
// stay deterministic.
type dictEntry struct {
	English string
	Tamil   string
}

// defaultDictionary covers common function words plus the content words
// that recur in vision captions. The fallback translator applies
// surrounded-by-space forms before bare substrings, so partial-word
// corruption is limited but not eliminated; this path is an emergency
// approximation, not a real translation.
var defaultDictionary = []dictEntry{
	{"the", ""},
	{"a", ""},
	{"an", ""},
	{"and", "மற்றும்"},
	{"or", "அல்லது"},
	{"but", "ஆனால்"},
	{"in", "இல்"},
	{"on", "மேல்"},
	{"at", "இல்"},
	{"to", "க்கு"},
	{"for", "க்காக"},
	{"of", "ஆன"},
	{"with", "உடன்"},
	{"by", "மூலம்"},
	{"as", "போல"},
	{"like", "போன்ற"},
	{"against", "எதிராக"},
	{"twilight", "அந்தி நேரம்"},
	{"horizon", "அடிவானம்"},
	{"cityscape", "நகரக் காட்சி"},
	{"glimmers", "மின்னுகிறது"},
	{"jeweled", "நவரத்தின"},
	{"tapestry", "துணி"},
	{"fading", "மங்கும்"},
	{"blush", "சிவப்பு"},
	{"day", "பகல்"},
	{"whispers", "மெதுவாக பரவுகிறது"},
	{"across", "முழுவதும்"},
	{"city", "நகரம்"},
	{"buildings", "கட்டிடங்கள்"},
	{"lights", "விளக்குகள்"},
	{"sky", "வானம்"},
	{"clouds", "மேகங்கள்"},
	{"trees", "மரங்கள்"},
	{"grass", "புல்"},
	{"water", "நீர்"},
	{"mountains", "மலைகள்"},
	{"road", "சாலை"},
	{"car", "கார்"},
	{"people", "மக்கள்"},
	{"sun", "சூரியன்"},
	{"moon", "சந்திரன்"},
	{"stars", "நட்சத்திரங்கள்"},
}
