package domain

// Document is an uploaded blob kept verbatim with its metadata.
type Document struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data,omitempty"`
}

func (d Document) Empty() bool { return len(d.Data) == 0 }

// Meta returns a copy without the payload, suitable for listings.
func (d Document) Meta() DocumentMeta {
	return DocumentMeta{Filename: d.Filename, ContentType: d.ContentType, Size: len(d.Data)}
}

type DocumentMeta struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}
