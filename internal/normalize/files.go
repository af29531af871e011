package normalize

import (
	"errors"
	"mime"
	"net/url"
	"path"
	"strings"
)

var ErrDocumentUnavailable = errors.New("document unavailable")

const (
	defaultExtension = "pdf"
	defaultMIMEType  = "application/pdf"
)

var mimeTypes = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"txt":  "text/plain",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"zip":  "application/zip",
}

type FileType struct {
	Extension string `json:"extension"`
	MIMEType  string `json:"mimeType"`
}

// GuessFileType looks at the file name suffix, then the URL path suffix, and
// falls back to PDF.
func GuessFileType(fileName, rawURL string) FileType {
	ext := extension(fileName)
	if ext == "" {
		if parsed, err := url.Parse(rawURL); err == nil {
			ext = extension(parsed.Path)
		}
	}
	if ext == "" {
		return FileType{Extension: defaultExtension, MIMEType: defaultMIMEType}
	}
	if known, ok := mimeTypes[ext]; ok {
		return FileType{Extension: ext, MIMEType: known}
	}
	if guessed := mime.TypeByExtension("." + ext); guessed != "" {
		return FileType{Extension: ext, MIMEType: guessed}
	}
	return FileType{Extension: ext, MIMEType: "application/octet-stream"}
}

func extension(name string) string {
	ext := strings.TrimPrefix(path.Ext(strings.TrimSpace(name)), ".")
	if ext == "" || len(ext) > 5 || strings.ContainsAny(ext, " /") || strings.Trim(ext, "0123456789") == "" {
		return ""
	}
	return strings.ToLower(ext)
}

// OpenTarget is what the file-open collaborator on the device needs.
type OpenTarget struct {
	URL string `json:"url"`
	FileType
}

func NewOpenTarget(doc DocumentView) (OpenTarget, error) {
	if strings.TrimSpace(doc.URL) == "" {
		return OpenTarget{}, ErrDocumentUnavailable
	}
	return OpenTarget{URL: doc.URL, FileType: doc.FileType}, nil
}
