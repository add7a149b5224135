package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
)

// UploadMedia posts one file to POST /media and returns the stored URL.
// mediaFor distinguishes listing images from ownership proofs.
func (c *Client) UploadMedia(ctx context.Context, token, fileName string, content io.Reader, mediaFor string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := w.WriteField("type", contentType); err != nil {
		return "", err
	}
	if err := w.WriteField("media_for", mediaFor); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	raw, err := c.sendMultipart(ctx, "/media", token, w.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}

	// Response is {url} or {data:{url}}.
	var envelope struct {
		URL  string `json:"url"`
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("media response decode: %w", err)
	}
	if envelope.URL != "" {
		return envelope.URL, nil
	}
	if envelope.Data.URL != "" {
		return envelope.Data.URL, nil
	}
	return "", fmt.Errorf("media response has no url")
}
