package usecase

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgate/internal/domain/entity"
	"docgate/internal/domain/model"
	repository "docgate/internal/domain/repository/imaging"
	"docgate/internal/infrastructure/imaging"
)

func TestValidatorPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		meta      entity.ImageMetadata
		accepted  bool
		dpiX      float64
		dpiY      float64
		estimated bool
	}{
		{
			name: "embedded dpi above threshold", meta: entity.ImageMetadata{WidthPx: 100, HeightPx: 100, DPIX: 300, DPIY: 300},
			accepted: true, dpiX: 300, dpiY: 300,
		},
		{
			name: "embedded dpi exactly at threshold", meta: entity.ImageMetadata{WidthPx: 640, HeightPx: 480, DPIX: 200, DPIY: 200},
			accepted: true, dpiX: 200, dpiY: 200,
		},
		{
			name: "one axis below threshold", meta: entity.ImageMetadata{WidthPx: 1654, HeightPx: 2339, DPIX: 150, DPIY: 300},
			accepted: false, dpiX: 150, dpiY: 300,
		},
		{
			name: "a4 at 300 dpi without metadata", meta: entity.ImageMetadata{WidthPx: 2480, HeightPx: 3507},
			accepted: true, dpiX: 300, dpiY: 300, estimated: true,
		},
		{
			name: "small image without metadata", meta: entity.ImageMetadata{WidthPx: 100, HeightPx: 100},
			accepted: false, dpiX: 12, dpiY: 9, estimated: true,
		},
		{
			name: "missing y axis discards reported x", meta: entity.ImageMetadata{WidthPx: 1000, HeightPx: 1000, DPIX: 600},
			accepted: false, dpiX: 121, dpiY: 86, estimated: true,
		},
		{
			name: "missing x axis discards reported y", meta: entity.ImageMetadata{WidthPx: 2480, HeightPx: 3507, DPIY: 72},
			accepted: true, dpiX: 300, dpiY: 300, estimated: true,
		},
		{
			name: "a4 scan size overrides low dpi", meta: entity.ImageMetadata{WidthPx: 2480, HeightPx: 3507, DPIX: 72, DPIY: 72},
			accepted: true, dpiX: 72, dpiY: 72,
		},
		{
			name: "inside pixel tolerance", meta: entity.ImageMetadata{WidthPx: 2485, HeightPx: 3502, DPIX: 72, DPIY: 72},
			accepted: true, dpiX: 72, dpiY: 72,
		},
		{
			name: "outside pixel tolerance", meta: entity.ImageMetadata{WidthPx: 2486, HeightPx: 3507, DPIX: 72, DPIY: 72},
			accepted: false, dpiX: 72, dpiY: 72,
		},
		{
			name: "density just under threshold", meta: entity.ImageMetadata{WidthPx: 640, HeightPx: 480, DPIX: 199.9996, DPIY: 199.9996},
			accepted: false, dpiX: 200, dpiY: 200,
		},
		{
			name: "estimated dpi above threshold", meta: entity.ImageMetadata{WidthPx: 1700, HeightPx: 2400},
			accepted: true, dpiX: 206, dpiY: 205, estimated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recorder := &fakeRecorder{}
			v := NewValidator(fakeReader{meta: tt.meta}, DefaultValidatorConfig(), recorder, nil)
			verdict := v.Validate(context.Background(), entity.UploadedBlob{Filename: "scan.png", Data: []byte("x")})

			require.Nil(t, verdict.Error)
			assert.Equal(t, tt.accepted, verdict.Accepted)
			assert.InDelta(t, tt.dpiX, verdict.DPIX, 0)
			assert.InDelta(t, tt.dpiY, verdict.DPIY, 0)
			assert.Equal(t, tt.meta.WidthPx, verdict.WidthPx)
			assert.Equal(t, tt.meta.HeightPx, verdict.HeightPx)
			assert.Equal(t, tt.estimated, verdict.Estimated)
			require.Len(t, recorder.verdicts, 1)
		})
	}
}

func TestValidatorFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		reader fakeReader
		kind   model.Kind
	}{
		{"unrecognized format", fakeReader{err: repository.ErrUnrecognizedFormat}, model.KindInvalidImage},
		{"corrupt payload", fakeReader{err: errors.Join(repository.ErrCorruptImage, errors.New("unexpected EOF"))}, model.KindInvalidImage},
		{"io failure", fakeReader{err: errors.New("disk on fire")}, model.KindInternal},
		{"decoder panic", fakeReader{panic: true}, model.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recorder := &fakeRecorder{}
			history := &fakeWriter{}
			v := NewValidator(tt.reader, DefaultValidatorConfig(), recorder, history)
			verdict := v.Validate(context.Background(), entity.UploadedBlob{Filename: "bad.png", Data: []byte("x")})

			require.NotNil(t, verdict.Error)
			assert.Equal(t, tt.kind, verdict.Error.Kind)
			assert.False(t, verdict.Accepted)
			assert.Zero(t, verdict.DPIX)
			assert.Zero(t, verdict.DPIY)
			assert.Zero(t, verdict.WidthPx)
			assert.Zero(t, verdict.HeightPx)
			assert.NotContains(t, verdict.Error.Message, "disk on fire")

			assert.Equal(t, []string{string(tt.kind)}, recorder.verdicts)
			require.Len(t, history.records, 1)
			assert.Equal(t, tt.kind, history.records[0].ErrorKind)
			assert.False(t, history.records[0].Succeeded)
		})
	}
}

func TestValidatorWithDecodedImages(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 100, 100))))

	history := &fakeWriter{}
	cfg := DefaultValidatorConfig()
	v := NewValidator(imaging.NewReader(cfg.MaxPixels), cfg, &fakeRecorder{}, history)

	verdict := v.Validate(context.Background(), entity.UploadedBlob{Filename: "small.png", Data: buf.Bytes()})
	require.Nil(t, verdict.Error)
	assert.False(t, verdict.Accepted)
	assert.InDelta(t, 12, verdict.DPIX, 0)
	assert.InDelta(t, 9, verdict.DPIY, 0)
	assert.Equal(t, 100, verdict.WidthPx)
	assert.Equal(t, 100, verdict.HeightPx)

	require.Len(t, history.records, 1)
	require.NotNil(t, history.records[0].Accepted)
	assert.False(t, *history.records[0].Accepted)
	assert.Equal(t, model.OperationVerify, history.records[0].Operation)

	verdict = v.Validate(context.Background(), entity.UploadedBlob{Filename: "notes.txt", Data: []byte("hello")})
	require.NotNil(t, verdict.Error)
	assert.Equal(t, model.KindInvalidImage, verdict.Error.Kind)
	assert.False(t, verdict.Accepted)
}

func TestValidatorRejectsDeclaredOversizedImage(t *testing.T) {
	t.Parallel()

	history := &fakeWriter{}
	cfg := DefaultValidatorConfig()
	v := NewValidator(imaging.NewReader(cfg.MaxPixels), cfg, &fakeRecorder{}, history)

	verdict := v.Validate(context.Background(), entity.UploadedBlob{Filename: "huge.png", Data: oversizedPNG(60000, 60000)})
	require.NotNil(t, verdict.Error)
	assert.Equal(t, model.KindInvalidImage, verdict.Error.Kind)
	assert.False(t, verdict.Accepted)

	require.Len(t, history.records, 1)
	assert.Equal(t, model.KindInvalidImage, history.records[0].ErrorKind)
}

// oversizedPNG is a valid PNG header declaring w x h RGBA pixels with no
// pixel data behind it.
func oversizedPNG(w, h uint32) []byte {
	chunk := func(kind string, body []byte) []byte {
		out := binary.BigEndian.AppendUint32(nil, uint32(len(body)))
		out = append(out, kind...)
		out = append(out, body...)

		return binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(append([]byte(kind), body...)))
	}

	ihdr := binary.BigEndian.AppendUint32(nil, w)
	ihdr = binary.BigEndian.AppendUint32(ihdr, h)
	ihdr = append(ihdr, 8, 6, 0, 0, 0)

	out := []byte("\x89PNG\r\n\x1a\n")
	out = append(out, chunk("IHDR", ihdr)...)
	out = append(out, chunk("IDAT", nil)...)

	return append(out, chunk("IEND", nil)...)
}

func TestValidatorConfigCheck(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultValidatorConfig().Check())

	broken := DefaultValidatorConfig()
	broken.PageHeightInches = 0
	assert.Error(t, broken.Check())

	broken = DefaultValidatorConfig()
	broken.TargetWidthPx = -1
	assert.Error(t, broken.Check())

	broken = DefaultValidatorConfig()
	broken.MaxPixels = -1
	assert.Error(t, broken.Check())
}
