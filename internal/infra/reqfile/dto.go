package reqfile

// fileDTO mirrors the on-disk batch document. Pointers distinguish a missing
// field from an empty one.
type fileDTO struct {
	Requests *[]entryDTO `json:"requests" yaml:"requests"`
}

type entryDTO struct {
	URL    *string `json:"url" yaml:"url"`
	Method *string `json:"method" yaml:"method"`
	Body   *string `json:"body,omitempty" yaml:"body,omitempty"`
}
