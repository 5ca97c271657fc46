// Package input turns raw terminal bytes into per-frame key and pointer state.
package input

import (
	"bufio"
	"bytes"
	"strconv"
)

// Pointer is a mouse position in 1-based terminal cells.
type Pointer struct {
	Col, Row int
}

// Input represents the current frame's input state.
type Input struct {
	Quit   bool
	Start  bool // Space or Enter
	Stop   bool
	Escape bool // A lone ESC key press

	// Arrow key presses this frame, summed per axis
	DX, DY int

	// Pointer is the last mouse position reported this frame, nil if none
	Pointer *Pointer

	Pressed []byte
}

// Active reports whether the user did anything this frame.
func (in Input) Active() bool {
	return len(in.Pressed) > 0
}

// Stream delivers input bytes via a channel. Escape sequences split across
// reads are carried over to the next ReadInput.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 512)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := Parse(buf)
	if len(rest) > 0 {
		s.pending = append([]byte(nil), rest...)
	}
	if s.closed {
		in.Quit = true
	}
	return in
}

// ResetKeyInput discards anything buffered so a key that started a game
// does not leak into the next frame.
func ResetKeyInput(s *Stream) {
	s.pending = nil
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				s.closed = true
				return
			}
		default:
			return
		}
	}
}

// Parse decodes buf into an Input. An incomplete trailing escape sequence is
// returned as rest so the caller can retry once more bytes arrive.
func Parse(buf []byte) (in Input, rest []byte) {
	in.Pressed = buf
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByte(&in, b)
			continue
		}

		// Lone ESC at the end may be the start of a sequence still in flight.
		if i+1 >= len(buf) {
			if len(buf) == 1 {
				in.Escape = true
				return in, nil
			}
			return in, buf[i:]
		}
		switch buf[i+1] {
		case '[':
		case 'O': // SS3, arrows in application cursor mode
			if i+2 >= len(buf) {
				return in, buf[i:]
			}
			applyArrow(&in, buf[i+2])
			i += 2
			continue
		default:
			// Alt+key: drop the prefix, the key is read on its own
			continue
		}
		if i+2 >= len(buf) {
			return in, buf[i:]
		}

		if buf[i+2] == '<' {
			n, p, ok := parseSGRMouse(buf[i:])
			if n == 0 {
				return in, buf[i:]
			}
			if ok {
				in.Pointer = &p
			}
			i += n - 1
			continue
		}

		n := csiLength(buf[i:])
		if n == 0 {
			return in, buf[i:]
		}
		// Only bare arrows move; modified ones (ESC [ 1 ; 5 A) are skipped whole
		if n == 3 {
			applyArrow(&in, buf[i+2])
		}
		i += n - 1
	}
	return in, nil
}

// csiLength returns the length of the CSI sequence at the start of seq,
// up to and including its final byte (0x40-0x7E), or 0 if incomplete.
func csiLength(seq []byte) int {
	for j := 2; j < len(seq); j++ {
		if seq[j] >= 0x40 && seq[j] <= 0x7E {
			return j + 1
		}
	}
	if len(seq) > 32 {
		return len(seq) // Garbage, drop it
	}
	return 0
}

func applyArrow(in *Input, final byte) {
	switch final {
	case 'A':
		in.DY--
	case 'B':
		in.DY++
	case 'C':
		in.DX++
	case 'D':
		in.DX--
	}
}

// parseSGRMouse decodes "ESC [ < b ; col ; row (M|m)". It returns the number
// of bytes consumed, 0 if the sequence is incomplete.
func parseSGRMouse(seq []byte) (n int, p Pointer, ok bool) {
	end := bytes.IndexAny(seq, "Mm")
	if end < 0 {
		if len(seq) > 32 {
			return len(seq), Pointer{}, false // Garbage, drop it
		}
		return 0, Pointer{}, false
	}
	fields := bytes.Split(seq[3:end], []byte{';'})
	if len(fields) != 3 {
		return end + 1, Pointer{}, false
	}
	col, err1 := strconv.Atoi(string(fields[1]))
	row, err2 := strconv.Atoi(string(fields[2]))
	if err1 != nil || err2 != nil {
		return end + 1, Pointer{}, false
	}
	return end + 1, Pointer{Col: col, Row: row}, true
}

// applyByte updates the frame input for a single plain byte.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C arrives as a byte in raw mode
		in.Quit = true
	case ' ', '\n', '\r':
		in.Start = true
	case 'x', 'X':
		in.Stop = true
	case 'w', 'W', 'k', 'K':
		in.DY--
	case 's', 'S', 'j', 'J':
		in.DY++
	case 'a', 'A', 'h', 'H':
		in.DX--
	case 'd', 'D', 'l', 'L':
		in.DX++
	}
}
