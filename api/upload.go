package api

import (
	"context"
	"io"
)

type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

func UploadImage(ctx context.Context, token, filename string, file io.Reader) (*UploadResponse, error) {
	var result UploadResponse
	resp, err := request(ctx, token).
		SetFileReader("file", filename, file).
		SetResult(&result).
		Post("/upload/image")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}

func DeleteImage(ctx context.Context, token, filename string) error {
	resp, err := request(ctx, token).Delete("/upload/image/" + filename)
	return check(resp, err)
}
