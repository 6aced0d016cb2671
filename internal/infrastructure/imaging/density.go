package imaging

import (
	"bytes"
	"encoding/binary"
)

const (
	inchesPerMetre = 0.0254
	cmPerInch      = 2.54

	tiffTagXResolution    = 0x011A
	tiffTagYResolution    = 0x011B
	tiffTagResolutionUnit = 0x0128
	tiffTypeShort         = 3
	tiffTypeRational      = 5
	tiffUnitInch          = 2
	tiffUnitCentimetre    = 3
)

var (
	pngSignature = []byte("\x89PNG\r\n\x1a\n")
	jfifID       = []byte("JFIF\x00")
	exifID       = []byte("Exif\x00\x00")
)

// readDensity returns the resolution recorded in the container, in dots per
// inch. Missing or unusable entries read as (0, 0).
func readDensity(format string, data []byte) (float64, float64) {
	var x, y float64

	switch format {
	case "png":
		x, y = pngDensity(data)
	case "jpeg":
		x, y = jpegDensity(data)
	case "tiff":
		x, y = tiffDensity(data)
	case "bmp":
		x, y = bmpDensity(data)
	}

	return x, y
}

func pngDensity(data []byte) (float64, float64) {
	if !bytes.HasPrefix(data, pngSignature) {
		return 0, 0
	}

	off := len(pngSignature)
	for off+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[off:]))
		kind := string(data[off+4 : off+8])
		body := off + 8
		if length < 0 || body+length > len(data) {
			return 0, 0
		}

		switch kind {
		case "pHYs":
			// unit 0 only states the aspect ratio
			if length < 9 || data[body+8] != 1 {
				return 0, 0
			}

			return float64(binary.BigEndian.Uint32(data[body:])) * inchesPerMetre,
				float64(binary.BigEndian.Uint32(data[body+4:])) * inchesPerMetre
		case "IDAT", "IEND":
			return 0, 0
		}

		off = body + length + 4
	}

	return 0, 0
}

func jpegDensity(data []byte) (float64, float64) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return 0, 0
	}

	var exifX, exifY float64
	off := 2
	for off+4 <= len(data) {
		if data[off] != 0xFF {
			break
		}

		marker := data[off+1]
		switch {
		case marker == 0xFF:
			off++

			continue
		case marker == 0x01 || (marker >= 0xD0 && marker <= 0xD8):
			off += 2

			continue
		case marker == 0xDA || marker == 0xD9:
			return exifX, exifY
		}

		length := int(binary.BigEndian.Uint16(data[off+2:]))
		if length < 2 || off+2+length > len(data) {
			break
		}
		segment := data[off+4 : off+2+length]

		switch marker {
		case 0xE0:
			if x, y, ok := jfifDensity(segment); ok {
				return x, y
			}
		case 0xE1:
			if exifX == 0 && exifY == 0 && bytes.HasPrefix(segment, exifID) {
				exifX, exifY = tiffDensity(segment[len(exifID):])
			}
		}

		off += 2 + length
	}

	return exifX, exifY
}

func jfifDensity(segment []byte) (float64, float64, bool) {
	if len(segment) < 12 || !bytes.HasPrefix(segment, jfifID) {
		return 0, 0, false
	}

	x := float64(binary.BigEndian.Uint16(segment[8:]))
	y := float64(binary.BigEndian.Uint16(segment[10:]))

	switch segment[7] {
	case 1:
		return x, y, true
	case 2:
		return x * cmPerInch, y * cmPerInch, true
	default:
		return 0, 0, false
	}
}

// tiffDensity reads the resolution tags of the first IFD. It serves both TIFF
// files and the EXIF block of JPEG files.
func tiffDensity(data []byte) (float64, float64) {
	if len(data) < 8 {
		return 0, 0
	}

	var order binary.ByteOrder
	switch string(data[:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return 0, 0
	}

	if order.Uint16(data[2:]) != 42 {
		return 0, 0
	}

	ifd := int(order.Uint32(data[4:]))
	if ifd < 8 || ifd+2 > len(data) {
		return 0, 0
	}

	var x, y float64
	unit := uint16(tiffUnitInch)
	count := int(order.Uint16(data[ifd:]))
	for i := 0; i < count; i++ {
		entry := ifd + 2 + i*12
		if entry+12 > len(data) {
			break
		}

		kind := order.Uint16(data[entry+2:])
		switch order.Uint16(data[entry:]) {
		case tiffTagXResolution:
			x = tiffRational(order, data, kind, entry)
		case tiffTagYResolution:
			y = tiffRational(order, data, kind, entry)
		case tiffTagResolutionUnit:
			if kind == tiffTypeShort {
				unit = order.Uint16(data[entry+8:])
			}
		}
	}

	// a lone resolution tag applies to both axes
	if x == 0 {
		x = y
	}
	if y == 0 {
		y = x
	}

	switch unit {
	case tiffUnitInch:
		return x, y
	case tiffUnitCentimetre:
		return x * cmPerInch, y * cmPerInch
	default:
		return 0, 0
	}
}

func tiffRational(order binary.ByteOrder, data []byte, kind uint16, entry int) float64 {
	if kind != tiffTypeRational {
		return 0
	}

	off := int(order.Uint32(data[entry+8:]))
	if off < 0 || off+8 > len(data) {
		return 0
	}

	num := order.Uint32(data[off:])
	den := order.Uint32(data[off+4:])
	if den == 0 {
		return 0
	}

	return float64(num) / float64(den)
}

func bmpDensity(data []byte) (float64, float64) {
	if len(data) < 46 || data[0] != 'B' || data[1] != 'M' {
		return 0, 0
	}

	// BITMAPINFOHEADER and later carry pixels per metre
	if binary.LittleEndian.Uint32(data[14:]) < 40 {
		return 0, 0
	}

	x := int32(binary.LittleEndian.Uint32(data[38:]))
	y := int32(binary.LittleEndian.Uint32(data[42:]))
	if x <= 0 || y <= 0 {
		return 0, 0
	}

	return float64(x) * inchesPerMetre, float64(y) * inchesPerMetre
}
