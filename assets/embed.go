package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed five-letters.txt
var FS embed.FS

// FiveLetterFile is the bundled word list, one word per line.
const FiveLetterFile = "five-letters.txt"

// ReadLines returns the trimmed, lowercased lines of r, skipping blanks and
// '#' comments. Source order is kept.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// FiveLetterWords returns the bundled five-letter word list.
func FiveLetterWords() ([]string, error) {
	f, err := FS.Open(FiveLetterFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}
