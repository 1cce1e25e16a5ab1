package kbp

// Margins are the page-level placement margins from the header, in pixels.
type Margins struct {
	Left    int
	Right   int
	Top     int
	Spacing int
}

// Other holds the remaining header settings: the border palette index and
// the default wipe detail substituted for syllables that declare wipe 0.
type Other struct {
	BorderColor int
	WipeDetail  int
}

// TrackInfo is the Track Information section. The format reads as freeform
// key/value, though in practice it always carries status, title, artist,
// audio, buildfile, intro, outro, and comments. Keys are lowercased;
// indented continuation lines are newline-joined into the previous value.
type TrackInfo map[string]string

// SyncedStatus is the status value of a fully synced track. Only synced
// tracks can be converted.
const SyncedStatus = "1"

// Status returns the track's status field.
func (t TrackInfo) Status() string {
	return t["status"]
}

// Title returns the track's title field.
func (t TrackInfo) Title() string {
	return t["title"]
}

// File is a fully parsed KBP project. All fields are populated by a single
// parse pass and not mutated afterward.
type File struct {
	Colors    Palette
	Styles    StyleCollection
	Margins   Margins
	Other     Other
	TrackInfo TrackInfo
	Pages     []Page
	Images    []Image
}
