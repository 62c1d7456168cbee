package domain

// FileRef points at an uploaded file in the object store. Records own an
// ordered list of these; only Key, Name and SizeBytes are persisted.
// DownloadURL is resolved lazily at read time by the file store and must
// never be written back to the database.
type FileRef struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	SizeBytes   int64  `json:"sizeBytes"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// StripDownloadURLs returns a copy of refs with the computed DownloadURL
// cleared, suitable for persisting.
func StripDownloadURLs(refs []FileRef) []FileRef {
	if refs == nil {
		return nil
	}
	out := make([]FileRef, len(refs))
	for i, r := range refs {
		r.DownloadURL = ""
		out[i] = r
	}
	return out
}
