package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"collegeconnect/internal/domain"
)

// Form fields that always decode as lists or numbers, whatever their count.
var (
	listFields = map[string]bool{"specialization": true, "studentIds": true}
	intFields  = map[string]bool{"establishedYear": true}
)

// payload is a request body normalised to JSON, plus any uploaded files
// keyed by form field.
type payload struct {
	raw   []byte
	files map[string][]domain.Document
}

func (p payload) decode(dst any) error {
	if len(p.raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(p.raw, dst); err != nil {
		return badRequest("malformed body: %v", err)
	}
	return nil
}

func (p payload) file(field string) domain.Document {
	if docs := p.files[field]; len(docs) > 0 {
		return docs[0]
	}
	return domain.Document{}
}

// readPayload accepts either a JSON body or a multipart form. Multipart text
// fields are folded into a JSON object, skipping blank ones. A dotted name such as
// "address.city" becomes a nested object.
func readPayload(w http.ResponseWriter, r *http.Request, maxBytes int64) (payload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return payload{}, bodyError(err)
		}
		return payload{raw: bytes.TrimSpace(raw)}, nil
	}

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return payload{}, bodyError(err)
	}
	form := r.MultipartForm
	obj := map[string]any{}
	for key, values := range form.Value {
		// a blank field counts as absent
		if strings.TrimSpace(strings.Join(values, "")) == "" {
			continue
		}
		v, err := formValue(key, values)
		if err != nil {
			return payload{}, err
		}
		if parent, child, nested := strings.Cut(key, "."); nested {
			m, _ := obj[parent].(map[string]any)
			if m == nil {
				m = map[string]any{}
				obj[parent] = m
			}
			m[child] = v
			continue
		}
		obj[key] = v
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return payload{}, err
	}

	files := map[string][]domain.Document{}
	for field, headers := range form.File {
		for _, fh := range headers {
			doc, err := readFile(fh)
			if err != nil {
				return payload{}, err
			}
			files[field] = append(files[field], doc)
		}
	}
	return payload{raw: raw, files: files}, nil
}

func formValue(key string, values []string) (any, error) {
	switch {
	case listFields[key]:
		var out []string
		for _, v := range values {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
		return out, nil
	case intFields[key]:
		n, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			return nil, badRequest("%s must be a number", key)
		}
		return n, nil
	}
	return values[0], nil
}

func readFile(fh *multipart.FileHeader) (domain.Document, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.Document{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return domain.Document{}, bodyError(err)
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return domain.Document{Filename: fh.Filename, ContentType: contentType, Data: data}, nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return badRequest("request body exceeds %d bytes", tooLarge.Limit)
	}
	return badRequest("unreadable body: %v", err)
}

// serveDocument streams a stored document. ?inline=true asks the browser to
// display it instead of downloading.
func serveDocument(w http.ResponseWriter, r *http.Request, doc *domain.Document) {
	disposition := "attachment"
	if inline, _ := strconv.ParseBool(r.URL.Query().Get("inline")); inline {
		disposition = "inline"
	}
	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": doc.Filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}
