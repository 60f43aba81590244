package util

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// ValidateMimeType sniffs the first 512 bytes of reader and checks the
// detected type against allowedTypes (full types or prefixes such as
// "video/"). The caller is responsible for seeking back to the start.
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

func IsVideo(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeVideoPrefix)
}

func IsPDF(mimeType string) bool {
	return mimeType == MimePDF
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeImagePrefix)
}

// ExtensionForContentType derives the object-key extension from the declared
// content type, e.g. "video/mp4" -> "mp4", "application/pdf" -> "pdf".
func ExtensionForContentType(contentType string) string {
	switch {
	case contentType == MimePDF:
		return "pdf"
	case strings.HasPrefix(contentType, MimeVideoPrefix):
		sub := strings.TrimPrefix(contentType, MimeVideoPrefix)
		if i := strings.IndexAny(sub, ";+ "); i > 0 {
			sub = sub[:i]
		}
		if sub == "" {
			return "mp4"
		}
		return sub
	case strings.HasPrefix(contentType, MimeImagePrefix):
		sub := strings.TrimPrefix(contentType, MimeImagePrefix)
		if i := strings.IndexAny(sub, ";+ "); i > 0 {
			sub = sub[:i]
		}
		if sub == "" {
			return "jpg"
		}
		return sub
	}
	return "bin"
}

// FilenameFromObjectKey returns the last path segment of an object key, the
// way content-disposition filenames are derived for downloads.
func FilenameFromObjectKey(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}
