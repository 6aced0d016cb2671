package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func grayImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x + y) % 256)})
		}
	}

	return img
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, grayImage(w, h)))

	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, grayImage(w, h), &jpeg.Options{Quality: 80}))

	return buf.Bytes()
}

// withPHYs inserts a pHYs chunk right after IHDR.
func withPHYs(t *testing.T, data []byte, ppmX, ppmY uint32, unit byte) []byte {
	t.Helper()

	body := make([]byte, 9)
	binary.BigEndian.PutUint32(body, ppmX)
	binary.BigEndian.PutUint32(body[4:], ppmY)
	body[8] = unit

	chunk := make([]byte, 0, 21)
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(body)))
	chunk = append(chunk, "pHYs"...)
	chunk = append(chunk, body...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(append([]byte("pHYs"), body...)))

	// signature (8) + IHDR chunk (4 + 4 + 13 + 4)
	const afterIHDR = 33
	require.Greater(t, len(data), afterIHDR)

	out := append([]byte{}, data[:afterIHDR]...)
	out = append(out, chunk...)

	return append(out, data[afterIHDR:]...)
}

// pngHeaderOnly is a well-formed PNG declaring w x h RGBA pixels whose
// image data is empty.
func pngHeaderOnly(w, h uint32) []byte {
	chunk := func(kind string, body []byte) []byte {
		out := binary.BigEndian.AppendUint32(nil, uint32(len(body)))
		out = append(out, kind...)
		out = append(out, body...)

		return binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(append([]byte(kind), body...)))
	}

	ihdr := binary.BigEndian.AppendUint32(nil, w)
	ihdr = binary.BigEndian.AppendUint32(ihdr, h)
	ihdr = append(ihdr, 8, 6, 0, 0, 0)

	out := append([]byte{}, pngSignature...)
	out = append(out, chunk("IHDR", ihdr)...)
	out = append(out, chunk("IDAT", nil)...)

	return append(out, chunk("IEND", nil)...)
}

// withJPEGSegment inserts an APPn segment right after SOI.
func withJPEGSegment(t *testing.T, data []byte, marker byte, payload []byte) []byte {
	t.Helper()

	seg := []byte{0xFF, marker}
	seg = binary.BigEndian.AppendUint16(seg, uint16(len(payload)+2))
	seg = append(seg, payload...)

	out := append([]byte{}, data[:2]...)
	out = append(out, seg...)

	return append(out, data[2:]...)
}

func jfifPayload(unit byte, x, y uint16) []byte {
	p := append([]byte{}, jfifID...)
	p = append(p, 1, 2, unit)
	p = binary.BigEndian.AppendUint16(p, x)
	p = binary.BigEndian.AppendUint16(p, y)

	return append(p, 0, 0)
}

// tiffResolutionIFD builds a little-endian TIFF header with one IFD holding
// the resolution tags. A zero resolution leaves the tag out.
func tiffResolutionIFD(xNum, yNum, den uint32, unit uint16) []byte {
	order := binary.LittleEndian

	type entry struct {
		tag, kind uint16
		value     uint32
	}

	var entries []entry
	var rationals []uint32
	if xNum != 0 {
		entries = append(entries, entry{tiffTagXResolution, tiffTypeRational, 0})
		rationals = append(rationals, xNum, den)
	}
	if yNum != 0 {
		entries = append(entries, entry{tiffTagYResolution, tiffTypeRational, 0})
		rationals = append(rationals, yNum, den)
	}
	entries = append(entries, entry{tiffTagResolutionUnit, tiffTypeShort, uint32(unit)})

	ifdSize := 2 + len(entries)*12 + 4
	rationalOff := uint32(8 + ifdSize)

	buf := []byte("II")
	buf = order.AppendUint16(buf, 42)
	buf = order.AppendUint32(buf, 8)
	buf = order.AppendUint16(buf, uint16(len(entries)))

	next := rationalOff
	for _, e := range entries {
		buf = order.AppendUint16(buf, e.tag)
		buf = order.AppendUint16(buf, e.kind)
		buf = order.AppendUint32(buf, 1)
		if e.kind == tiffTypeRational {
			buf = order.AppendUint32(buf, next)
			next += 8
		} else {
			buf = order.AppendUint16(buf, uint16(e.value))
			buf = order.AppendUint16(buf, 0)
		}
	}
	buf = order.AppendUint32(buf, 0)

	for _, v := range rationals {
		buf = order.AppendUint32(buf, v)
	}

	return buf
}
