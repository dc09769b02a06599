package tagdict

// Source exposes the tags of one map feature (a way or a node) by compact id.
type Source interface {
	// HasTag reports whether the feature carries key.
	HasTag(key ID) bool
	// GetTag returns the value id for key and whether the key is present.
	GetTag(key ID) (ID, bool)
}

// MapSource is a Source backed by a map from key id to value id.
type MapSource map[ID]ID

// HasTag implements Source.
func (m MapSource) HasTag(key ID) bool {
	_, ok := m[key]
	return ok
}

// GetTag implements Source.
func (m MapSource) GetTag(key ID) (ID, bool) {
	v, ok := m[key]
	return v, ok
}

// Empty is a Source without any tags.
var Empty Source = emptySource{}

type emptySource struct{}

func (emptySource) HasTag(ID) bool       { return false }
func (emptySource) GetTag(ID) (ID, bool) { return Unknown, false }
