package models

// Upload is an image part received with a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
