package cache

// Keyer derives cache keys. Keys for the same inputs must be stable across
// processes so the CLI and the server can share a cache.
type Keyer interface {
	// BracketKey addresses a generated ladder document.
	BracketKey(opts BracketKeyOpts) string

	// ArtifactKey addresses one rendered format of a document.
	ArtifactKey(docHash, format string) string

	// RosterKey addresses team records built from a roster upload.
	RosterKey(csvHash string, cols [4]int) string
}

// BracketKeyOpts are the inputs that change a generated document.
type BracketKeyOpts struct {
	Capacity int    `json:"capacity"`
	Lenient  bool   `json:"lenient"`
	OffsetX  int    `json:"offset_x"`
	OffsetY  int    `json:"offset_y"`
	WinnersY int    `json:"winners_y"`
	Date     string `json:"date"`
	Teams    string `json:"teams,omitempty"` // hash of the team records
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) BracketKey(opts BracketKeyOpts) string {
	return hashKey("bracket", opts)
}

func (DefaultKeyer) ArtifactKey(docHash, format string) string {
	return hashKey("artifact", docHash, format)
}

func (DefaultKeyer) RosterKey(csvHash string, cols [4]int) string {
	return hashKey("roster", csvHash, cols)
}

var _ Keyer = DefaultKeyer{}
