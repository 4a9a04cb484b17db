// Package peripherals defines the external collaborators the BASIC
// runtime forwards its graphics, audio, file and persistence
// statements to. The interpreter only ever talks to these interfaces;
// it never rasterizes a pixel, synthesizes a waveform, or touches a
// real filesystem itself (spec.md §6).
package peripherals

// Graphics is the bitmap/viewport subsystem behind SCREEN, CLS,
// COLOR, PSET, PRESET, LINE, CIRCLE, PAINT, GET, PUT, VIEW, WINDOW,
// PALETTE, DRAW, and the POINT builtin.
type Graphics interface {
	SetScreenMode(mode int) error
	Cls(mode int) error
	SetColor(fg, bg, border int) error
	PSet(x, y, color int) error
	PReset(x, y, color int) error
	Line(x1, y1, x2, y2, color int, style string) error
	Circle(x, y, radius, color int, start, end, aspect float64) error
	Paint(x, y, paintColor, borderColor int) error
	GetSprite(x1, y1, x2, y2 int) ([]byte, error)
	PutSprite(x, y int, sprite []byte, action string) error
	SetView(x1, y1, x2, y2 int) error
	SetWindow(x1, y1, x2, y2 float64) error
	SetPalette(index, color int) error
	Draw(commands string) error
	Point(x, y int) (float64, error)
}

// Audio is the sound subsystem behind SOUND and PLAY.
type Audio interface {
	Sound(frequency, durationMS int) error
	Play(mml string) error
}

// FileSystem is the numbered-file I/O layer behind OPEN, CLOSE,
// PRINT# and INPUT#.
type FileSystem interface {
	Open(file int, name string, mode string) error
	Close(file int) error
	Print(file int, s string) error
	InputLine(file int) (string, error)
}

// Persistence is the program save/load layer behind the SAVE and
// LOAD meta-commands.
type Persistence interface {
	Save(name string, listing string) error
	Load(name string) (string, error)
}

// NopGraphics discards every graphics call and reads back zero.
// It is the default Graphics peripheral when the host does not wire
// in a real rasterizer.
type NopGraphics struct{}

func (NopGraphics) SetScreenMode(int) error                             { return nil }
func (NopGraphics) Cls(int) error                                       { return nil }
func (NopGraphics) SetColor(int, int, int) error                        { return nil }
func (NopGraphics) PSet(int, int, int) error                            { return nil }
func (NopGraphics) PReset(int, int, int) error                          { return nil }
func (NopGraphics) Line(int, int, int, int, int, string) error          { return nil }
func (NopGraphics) Circle(int, int, int, int, float64, float64, float64) error { return nil }
func (NopGraphics) Paint(int, int, int, int) error                      { return nil }
func (NopGraphics) GetSprite(x1, y1, x2, y2 int) ([]byte, error) {
	return EncodeSprite(abs(x2-x1)+1, abs(y2-y1)+1, nil), nil
}
func (NopGraphics) PutSprite(int, int, []byte, string) error { return nil }
func (NopGraphics) SetView(int, int, int, int) error         { return nil }
func (NopGraphics) SetWindow(float64, float64, float64, float64) error { return nil }
func (NopGraphics) SetPalette(int, int) error                { return nil }
func (NopGraphics) Draw(string) error                        { return nil }
func (NopGraphics) Point(int, int) (float64, error)          { return 0, nil }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// NopAudio discards every sound call, for hosts with no audio device.
type NopAudio struct{}

func (NopAudio) Sound(int, int) error { return nil }
func (NopAudio) Play(string) error    { return nil }
