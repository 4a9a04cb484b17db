package peripherals

import "encoding/binary"

// EncodeSprite packs a GET-captured rectangle into the wire format
// PUT expects back: two little-endian uint16 dimensions followed by
// width*height row-major bytes (spec.md §6). pixels shorter than
// width*height is zero-padded; longer is truncated.
func EncodeSprite(width, height int, pixels []byte) []byte {
	n := width * height
	buf := make([]byte, 4+n)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(width))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(height))
	copy(buf[4:], pixels)
	return buf
}

// DecodeSprite unpacks a PUT payload into its dimensions and pixel
// bytes. It errors if the buffer is shorter than its declared header
// plus body.
func DecodeSprite(buf []byte) (width, height int, pixels []byte, err error) {
	if len(buf) < 4 {
		return 0, 0, nil, errSpriteShort
	}
	width = int(binary.LittleEndian.Uint16(buf[0:2]))
	height = int(binary.LittleEndian.Uint16(buf[2:4]))
	want := 4 + width*height
	if len(buf) < want {
		return 0, 0, nil, errSpriteShort
	}
	pixels = buf[4:want]
	return width, height, pixels, nil
}

type spriteError string

func (e spriteError) Error() string { return string(e) }

const errSpriteShort = spriteError("sprite buffer shorter than its declared dimensions")
