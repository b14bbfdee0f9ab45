package tui

import (
	"bufio"
	"io"
)

// KeyName identifies a non-printable key. Printable keys are delivered via
// Key.Rune instead, with Name left KeyNone.
type KeyName uint8

const (
	KeyNone KeyName = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyEnter
	KeyTab
	KeyBackTab
	KeyBackspace
	KeyDelete
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Key is one decoded keystroke, grounded on basementui's go/tui/input.go
// hand-rolled CSI/SS3 parser (used in place of the teacher's unavailable
// riffkey input reader).
type Key struct {
	Rune  rune
	Name  KeyName
	Ctrl  bool
	Alt   bool
	Shift bool
}

// MouseEvent is a decoded SGR mouse report (spec.md §4.8 "mouse").
type MouseEvent struct {
	X, Y    int
	Button  int
	Pressed bool
	Motion  bool
}

// InputEvent is either a Key or a MouseEvent; exactly one of the two
// pointer fields is non-nil.
type InputEvent struct {
	Key   *Key
	Mouse *MouseEvent
}

// decoder turns a raw byte stream from the terminal into InputEvents. It
// reads through a small buffer; an ESC that is the last byte available in
// the buffer is reported as a bare Escape keypress, so an escape sequence
// split across two reads is not reassembled.
type decoder struct {
	r *bufio.Reader
}

func newDecoder(r io.Reader) *decoder {
	return &decoder{r: bufio.NewReaderSize(r, 256)}
}

// next blocks until one input event is available, or returns an error (io.EOF
// on stdin close, used by the scheduler to unwind cleanly on shutdown).
func (d *decoder) next() (InputEvent, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return InputEvent{}, err
	}

	if b == 0x1b {
		return d.decodeEscape()
	}
	if b < 0x20 || b == 0x7f {
		return InputEvent{Key: decodeByte(b)}, nil
	}
	if b < 0x80 {
		return InputEvent{Key: &Key{Rune: rune(b)}}, nil
	}

	// Multi-byte UTF-8 printable character: put the lead byte back and
	// decode the full rune.
	if err := d.r.UnreadByte(); err != nil {
		return InputEvent{Key: &Key{Rune: rune(b)}}, nil
	}
	r, _, err := d.r.ReadRune()
	if err != nil {
		return InputEvent{}, err
	}
	return InputEvent{Key: &Key{Rune: r}}, nil
}

func (d *decoder) decodeEscape() (InputEvent, error) {
	if d.r.Buffered() == 0 {
		// A bare ESC with nothing following (yet). Peek briefly is not
		// possible without blocking further, so treat it as a standalone
		// Escape key; a genuine sequence arrives as back-to-back bytes in
		// practice because terminals write escape sequences atomically.
		return InputEvent{Key: &Key{Name: KeyEscape}}, nil
	}

	b2, err := d.r.ReadByte()
	if err != nil {
		return InputEvent{}, err
	}

	switch b2 {
	case '[':
		return d.decodeCSI()
	case 'O':
		return d.decodeSS3()
	default:
		// Alt+<key>
		return InputEvent{Key: altKey(b2)}, nil
	}
}

func (d *decoder) decodeSS3() (InputEvent, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return InputEvent{}, err
	}
	switch b {
	case 'P':
		return InputEvent{Key: &Key{Name: KeyF1}}, nil
	case 'Q':
		return InputEvent{Key: &Key{Name: KeyF2}}, nil
	case 'R':
		return InputEvent{Key: &Key{Name: KeyF3}}, nil
	case 'S':
		return InputEvent{Key: &Key{Name: KeyF4}}, nil
	default:
		return InputEvent{Key: &Key{Name: KeyEscape}}, nil
	}
}

func (d *decoder) decodeCSI() (InputEvent, error) {
	var params []byte
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return InputEvent{}, err
		}
		if b >= '0' && b <= '9' || b == ';' {
			params = append(params, b)
			continue
		}
		return d.dispatchCSI(b, string(params))
	}
}

func (d *decoder) dispatchCSI(final byte, params string) (InputEvent, error) {
	if final == 'M' || final == '<' {
		return d.decodeMouse(final, params)
	}

	switch final {
	case 'A':
		return InputEvent{Key: &Key{Name: KeyUp}}, nil
	case 'B':
		return InputEvent{Key: &Key{Name: KeyDown}}, nil
	case 'C':
		return InputEvent{Key: &Key{Name: KeyRight}}, nil
	case 'D':
		return InputEvent{Key: &Key{Name: KeyLeft}}, nil
	case 'H':
		return InputEvent{Key: &Key{Name: KeyHome}}, nil
	case 'F':
		return InputEvent{Key: &Key{Name: KeyEnd}}, nil
	case 'Z':
		return InputEvent{Key: &Key{Name: KeyBackTab}}, nil
	case '~':
		return InputEvent{Key: tildeKey(params)}, nil
	default:
		return InputEvent{Key: &Key{Name: KeyEscape}}, nil
	}
}

func tildeKey(params string) *Key {
	switch params {
	case "1", "7":
		return &Key{Name: KeyHome}
	case "4", "8":
		return &Key{Name: KeyEnd}
	case "3":
		return &Key{Name: KeyDelete}
	case "5":
		return &Key{Name: KeyPageUp}
	case "6":
		return &Key{Name: KeyPageDown}
	case "15":
		return &Key{Name: KeyF5}
	case "17":
		return &Key{Name: KeyF6}
	case "18":
		return &Key{Name: KeyF7}
	case "19":
		return &Key{Name: KeyF8}
	case "20":
		return &Key{Name: KeyF9}
	case "21":
		return &Key{Name: KeyF10}
	case "23":
		return &Key{Name: KeyF11}
	case "24":
		return &Key{Name: KeyF12}
	default:
		return &Key{Name: KeyEscape}
	}
}

// decodeMouse parses an SGR (CSI < ...M/m) or legacy X10 (CSI M...) mouse
// report. Legacy reports are rare from modern terminals but kept as a
// fallback, mirroring basementui's dual-path mouse decoding.
func (d *decoder) decodeMouse(final byte, params string) (InputEvent, error) {
	if final == '<' {
		// params so far is digits/semicolons up to 'M' or 'm'; the final
		// byte we already consumed ('<') isn't the terminator here, so read
		// through to the real terminator.
		var rest []byte
		rest = append(rest, params...)
		for {
			b, err := d.r.ReadByte()
			if err != nil {
				return InputEvent{}, err
			}
			if b == 'M' || b == 'm' {
				cb, x, y := parseSGRMouse(string(rest))
				return InputEvent{Mouse: &MouseEvent{
					X: x - 1, Y: y - 1,
					Button:  cb & 3,
					Pressed: b == 'M',
					Motion:  cb&32 != 0,
				}}, nil
			}
			rest = append(rest, b)
		}
	}
	// Legacy X10: three raw bytes follow (button, x+32, y+32).
	b1, err := d.r.ReadByte()
	if err != nil {
		return InputEvent{}, err
	}
	bx, err := d.r.ReadByte()
	if err != nil {
		return InputEvent{}, err
	}
	by, err := d.r.ReadByte()
	if err != nil {
		return InputEvent{}, err
	}
	cb := int(b1) - 32
	return InputEvent{Mouse: &MouseEvent{
		X: int(bx) - 32 - 1, Y: int(by) - 32 - 1,
		Button:  cb & 3,
		Pressed: cb&3 != 3,
	}}, nil
}

func parseSGRMouse(params string) (cb, x, y int) {
	nums := [3]int{}
	idx := 0
	cur := 0
	have := false
	for i := 0; i < len(params) && idx < 3; i++ {
		c := params[i]
		if c == ';' {
			nums[idx] = cur
			idx++
			cur = 0
			have = false
			continue
		}
		if c >= '0' && c <= '9' {
			cur = cur*10 + int(c-'0')
			have = true
		}
	}
	if have && idx < 3 {
		nums[idx] = cur
	}
	return nums[0], nums[1], nums[2]
}

func decodeByte(b byte) *Key {
	switch {
	case b == '\r' || b == '\n':
		return &Key{Name: KeyEnter}
	case b == '\t':
		return &Key{Name: KeyTab}
	case b == 0x7f || b == 0x08:
		return &Key{Name: KeyBackspace}
	case b == 0x03:
		return &Key{Rune: 'c', Ctrl: true}
	case b < 0x20:
		return &Key{Rune: rune('a' + b - 1), Ctrl: true}
	default:
		return &Key{Rune: rune(b)}
	}
}

func altKey(b byte) *Key {
	k := decodeByte(b)
	k.Alt = true
	return k
}
