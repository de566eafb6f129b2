// Package loader parses the instruction- and data-memory image text formats
// into flat word slices ready for pkg/cpu.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// FormatError reports a malformed line in an instruction image.
type FormatError struct {
	Line int
	Text string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("instruction image line %d: %q is not 32 binary digits", e.Line, e.Text)
}

// LoadInstructions parses a text file of one 32-bit binary string per line
// (MSB first) into a slice of instruction words, line N landing in imem[N].
func LoadInstructions(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseInstructions(f)
}

// ParseInstructions is the io.Reader-driven core of LoadInstructions, split
// out so tests can feed it a strings.Reader without touching the filesystem.
func ParseInstructions(r io.Reader) ([]uint32, error) {
	var words []uint32
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		word, err := parseBinaryWord(text)
		if err != nil {
			return nil, &FormatError{Line: line, Text: text}
		}
		words = append(words, word)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading instruction image: %w", err)
	}
	return words, nil
}

func parseBinaryWord(text string) (uint32, error) {
	if len(text) != 32 {
		return 0, fmt.Errorf("want 32 bits, got %d", len(text))
	}
	v, err := strconv.ParseUint(text, 2, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// LoadData parses a text file of one 8-hex-digit word per line into a slice
// of data words, line N landing in dmem[N].
func LoadData(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseData(f)
}

// ParseData is the io.Reader-driven core of LoadData.
func ParseData(r io.Reader) ([]uint32, error) {
	var words []uint32
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseUint(text, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("data image line %d: %q: %w", line, text, err)
		}
		words = append(words, uint32(v))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading data image: %w", err)
	}
	return words, nil
}
