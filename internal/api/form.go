package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

// multipartForm assembles fields and file uploads into a multipart body. The
// returned content type carries the boundary and must reach the wire as-is.
func multipartForm(fields map[string]string, files map[string]Upload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write form field %q: %w", name, err)
		}
	}
	for name, upload := range files {
		part, err := writer.CreateFormFile(name, upload.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %q: %w", name, err)
		}
		if _, err := part.Write(upload.Content); err != nil {
			return nil, "", fmt.Errorf("write form file %q: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
