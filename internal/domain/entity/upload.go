package entity

// UploadedBlob is the content of one uploaded file field. It is consumed
// by exactly one pipeline.
type UploadedBlob struct {
	Filename string
	Data     []byte
}

func (b UploadedBlob) Size() int64 {
	return int64(len(b.Data))
}

// ImageMetadata is derived from a decoded image. A DPI of 0 means the
// value was absent.
type ImageMetadata struct {
	Format   string
	WidthPx  int
	HeightPx int
	DPIX     float64
	DPIY     float64
}

// ConversionArtifact is the PDF produced for a conversion request.
type ConversionArtifact struct {
	ID          string
	Data        []byte
	ContentType string
	Pages       int
	ArchiveKey  string
}
