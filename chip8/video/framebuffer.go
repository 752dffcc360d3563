package video

const (
	FramebufferWidth  = 64
	FramebufferHeight = 32
)

// FrameBuffer is the 64x32 monochrome display of the machine. Pixels
// are single bits, stored one per byte for simple indexing. The only
// mutation paths are Clear and DrawSprite, both driven by the display
// instructions.
type FrameBuffer struct {
	pixels []byte
}

// NewFrameBuffer creates an empty frame buffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{
		pixels: make([]byte, FramebufferWidth*FramebufferHeight),
	}
}

// Clear turns every pixel off.
func (fb *FrameBuffer) Clear() {
	for i := range fb.pixels {
		fb.pixels[i] = 0
	}
}

// GetPixel returns whether the pixel at (x, y) is set.
func (fb *FrameBuffer) GetPixel(x, y int) bool {
	return fb.pixels[y*FramebufferWidth+x] != 0
}

// DrawSprite XOR composites a sprite at (x, y) and reports whether any
// pixel was flipped from set to unset, which is the collision flag of
// the draw instruction. Sprites are 8 pixels wide, one row per byte,
// most significant bit leftmost. Coordinates wrap around the edges.
func (fb *FrameBuffer) DrawSprite(x, y byte, sprite []byte) bool {
	collision := false

	for row, line := range sprite {
		for col := 0; col < 8; col++ {
			if line&(0x80>>col) == 0 {
				continue
			}

			px := (int(x) + col) % FramebufferWidth
			py := (int(y) + row) % FramebufferHeight
			index := py*FramebufferWidth + px

			fb.pixels[index] ^= 1
			if fb.pixels[index] == 0 {
				collision = true
			}
		}
	}

	return collision
}

// ToSlice returns a copy of the pixel grid in row major order, one
// byte per pixel (0 or 1). Renderers get a snapshot, never the live
// buffer.
func (fb *FrameBuffer) ToSlice() []byte {
	out := make([]byte, len(fb.pixels))
	copy(out, fb.pixels)
	return out
}
