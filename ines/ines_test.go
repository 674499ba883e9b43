package ines

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// makeImage assembles a synthetic cartridge: header, optional trainer,
// PRG with distinct first/last bytes, optional CHR.
func makeImage(prgUnits, chrUnits uint8, trainer bool) []uint8 {
	header := make([]uint8, kHEADER_SIZE)
	copy(header, kMAGIC)
	header[4] = prgUnits
	header[5] = chrUnits
	if trainer {
		header[6] |= kFLAGS6_TRAINER
	}
	data := header
	if trainer {
		data = append(data, make([]uint8, kTRAINER_SIZE)...)
	}
	prg := make([]uint8, kPRG_UNIT*int(prgUnits))
	if len(prg) > 0 {
		prg[0] = 0xAA
		prg[len(prg)-1] = 0xBB
	}
	data = append(data, prg...)
	chr := make([]uint8, kCHR_UNIT*int(chrUnits))
	if len(chr) > 0 {
		chr[0] = 0xCC
		chr[len(chr)-1] = 0xDD
	}
	return append(data, chr...)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		prgUnits uint8
		chrUnits uint8
		trainer  bool
	}{
		{"16K PRG with CHR", 1, 1, false},
		{"32K PRG no CHR", 2, 0, false},
		{"trainer skipped", 1, 1, true},
	}
	for _, test := range tests {
		img, err := Parse(makeImage(test.prgUnits, test.chrUnits, test.trainer))
		if err != nil {
			t.Fatalf("%s: parse failed - %v", test.name, err)
		}
		if got, want := len(img.Prg), kPRG_UNIT*int(test.prgUnits); got != want {
			t.Errorf("%s: PRG size got %d want %d", test.name, got, want)
		}
		if img.Prg[0] != 0xAA || img.Prg[len(img.Prg)-1] != 0xBB {
			t.Errorf("%s: PRG sliced at wrong offset: %s", test.name, spew.Sdump(img.Prg[0:1]))
		}
		if test.chrUnits == 0 {
			if img.Chr != nil {
				t.Errorf("%s: CHR should be nil for character RAM carts", test.name)
			}
			continue
		}
		if got, want := len(img.Chr), kCHR_UNIT*int(test.chrUnits); got != want {
			t.Errorf("%s: CHR size got %d want %d", test.name, got, want)
		}
		if img.Chr[0] != 0xCC || img.Chr[len(img.Chr)-1] != 0xDD {
			t.Errorf("%s: CHR sliced at wrong offset", test.name)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data []uint8
	}{
		{"empty", nil},
		{"short header", []uint8{'N', 'E', 'S', 0x1A}},
		{"bad magic", makeBadMagic()},
		{"truncated PRG", makeImage(1, 0, false)[:100]},
		{"truncated CHR", makeImage(1, 1, false)[:kHEADER_SIZE+kPRG_UNIT+10]},
	}
	for _, test := range tests {
		if _, err := Parse(test.data); err == nil {
			t.Errorf("%s: expected an error", test.name)
		}
	}
}

func makeBadMagic() []uint8 {
	data := makeImage(1, 0, false)
	data[0] = 'X'
	return data
}
