package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestParseInstructionsDecodesMsbFirst(t *testing.T) {
	// addi x1, x0, 5 = 0x00500093
	text := "00000000010100000000000010010011\n"
	words, err := ParseInstructions(strings.NewReader(text))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(words) != 1 || words[0] != 0x00500093 {
		t.Errorf("words = %#v, want [0x500093]", words)
	}
}

func TestParseInstructionsRejectsShortLine(t *testing.T) {
	_, err := ParseInstructions(strings.NewReader("0101\n"))
	if err == nil {
		t.Fatal("expected format error for short line")
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Errorf("err = %v, want *FormatError", err)
	}
}

func TestParseInstructionsSkipsBlankLines(t *testing.T) {
	text := "00000000000000000000000000000000\n\n00000000000000000000000000000001\n"
	words, err := ParseInstructions(strings.NewReader(text))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(words) != 2 {
		t.Errorf("len(words) = %d, want 2", len(words))
	}
}

func TestParseDataDecodesHexWords(t *testing.T) {
	text := "11223344\nDEADBEEF\n"
	words, err := ParseData(strings.NewReader(text))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(words) != 2 || words[0] != 0x11223344 || words[1] != 0xDEADBEEF {
		t.Errorf("words = %#v", words)
	}
}

func TestParseDataRejectsBadHex(t *testing.T) {
	_, err := ParseData(strings.NewReader("not-hex!\n"))
	if err == nil {
		t.Fatal("expected error for malformed hex word")
	}
}
