// Package moderation redacts censored words from message previews before
// they leave the system inside a digest email.
package moderation

import (
	"bufio"
	"digest-lab/errors"
	"os"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

type Redactor struct {
	machine *goahocorasick.Machine
	mask    rune
}

// NewRedactor builds the Aho-Corasick automaton over the lowercased word list.
func NewRedactor(censoredWords []string, mask rune) (*Redactor, error) {
	if len(censoredWords) == 0 {
		return nil, errors.ErrEmptyWords
	}
	patterns := make([][]rune, len(censoredWords))
	for i, word := range censoredWords {
		patterns[i] = lowerRunes(word)
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, err
	}
	return &Redactor{machine: machine, mask: mask}, nil
}

// Redact replaces every occurrence of a censored word with the mask rune,
// case-insensitively, preserving the length and the rest of the text.
func (r *Redactor) Redact(original string) string {
	runes := []rune(original)
	if len(runes) == 0 {
		return original
	}

	spans := r.machine.MultiPatternSearch(lowerRunes(original), false)
	if len(spans) == 0 {
		return original
	}

	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(runes) {
			continue
		}
		for i := start; i < end; i++ {
			runes[i] = r.mask
		}
	}

	return string(runes)
}

func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// LoadWords reads one censored word per line, skipping blanks and comments.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, errors.ErrEmptyWords
	}
	return words, nil
}
