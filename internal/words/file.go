package words

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads a custom vocabulary with one word per line.
// Blank lines are skipped; an empty result is an error.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var vocab []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		vocab = append(vocab, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return vocab, nil
}
