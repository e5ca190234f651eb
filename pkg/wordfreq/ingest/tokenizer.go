package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
	"github.com/cognicore/wordfreq/pkg/wordfreq/stoplist"
)

// Tokenizer handles text tokenization and normalization
type Tokenizer struct {
	stops       *stoplist.Manager
	minLength   int
	keepDigits  bool
	keepHyphens bool
}

// NewTokenizer creates a new tokenizer with the given stopword list
func NewTokenizer(stopwords []string) *Tokenizer {
	return &Tokenizer{
		stops:       stoplist.NewManager(stopwords),
		minLength:   1,
		keepHyphens: true,
	}
}

// SetStoplist replaces the stopword manager. A nil manager disables filtering.
func (t *Tokenizer) SetStoplist(m *stoplist.Manager) {
	if m == nil {
		m = stoplist.NewManager(nil)
	}
	t.stops = m
}

// Stoplist returns the stopword manager in use.
func (t *Tokenizer) Stoplist() *stoplist.Manager {
	return t.stops
}

// SetMinLength drops tokens shorter than n runes.
func (t *Tokenizer) SetMinLength(n int) {
	if n < 1 {
		n = 1
	}
	t.minLength = n
}

// SetKeepDigits makes digits part of words instead of separators.
// Pure-numeric tokens are still dropped.
func (t *Tokenizer) SetKeepDigits(keep bool) {
	t.keepDigits = keep
}

// SetKeepHyphens keeps inner hyphens, so "war-time" stays one word.
func (t *Tokenizer) SetKeepHyphens(keep bool) {
	t.keepHyphens = keep
}

// Tokenize splits text into normalized tokens, removing stopwords.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	s := t.Stream(strings.NewReader(text))
	for {
		tok, err := s.Next()
		if err != nil {
			// strings.Reader only fails with io.EOF
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Stream returns a lazy token sequence over r. Nothing is read until the
// first call to Next.
func (t *Tokenizer) Stream(r io.Reader) *TokenStream {
	return &TokenStream{tok: t, r: bufio.NewReader(r)}
}

// TokenStream is a forward-only sequence of normalized tokens.
type TokenStream struct {
	tok      *Tokenizer
	r        *bufio.Reader
	current  strings.Builder
	err      error
	consumed int64
}

// Next returns the next token, or io.EOF when the input is exhausted.
// Read failures are wrapped in internalerr.ErrSourceRead and are sticky.
func (s *TokenStream) Next() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	for {
		r, _, err := s.r.ReadRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = fmt.Errorf("%w: %w", internalerr.ErrSourceRead, err)
				return "", s.err
			}
			// Don't forget the last token
			if word := s.flush(); word != "" {
				s.consumed++
				return word, nil
			}
			s.err = io.EOF
			return "", io.EOF
		}

		if s.tok.isWordRune(r) {
			s.current.WriteRune(unicode.ToLower(r))
			continue
		}
		if word := s.flush(); word != "" {
			s.consumed++
			return word, nil
		}
	}
}

// Consumed returns how many tokens Next has produced so far.
func (s *TokenStream) Consumed() int64 {
	return s.consumed
}

func (s *TokenStream) flush() string {
	if s.current.Len() == 0 {
		return ""
	}
	word := s.tok.processToken(s.current.String())
	s.current.Reset()
	return word
}

func (t *Tokenizer) isWordRune(r rune) bool {
	switch {
	case unicode.IsLetter(r):
		return true
	case unicode.IsNumber(r):
		return t.keepDigits
	case r == '-':
		return t.keepHyphens
	}
	return false
}

// processToken applies cleaning, length and stopword filtering.
func (t *Tokenizer) processToken(token string) string {
	word := cleanToken(token)
	if word == "" || utf8.RuneCountInString(word) < t.minLength {
		return ""
	}

	// Filter pure-numeric tokens; mixed ones like "utf-8" are kept.
	if isNumericOnly(word) {
		return ""
	}

	if t.stops.IsStop(word) {
		return ""
	}

	return word
}

// cleanToken strips leading/trailing hyphens and normalizes consecutive hyphens
func cleanToken(token string) string {
	token = strings.Trim(token, "-")

	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}

	return token
}

// isNumericOnly returns true if the token contains only digits and hyphens.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsNumber(r) && r != '-' {
			return false
		}
	}
	return true
}
