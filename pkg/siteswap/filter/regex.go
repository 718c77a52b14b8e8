package filter

import (
	"regexp"
	"strings"

	"github.com/matzehuels/jugglesearch/pkg/errors"
)

// metachars are notation characters that are also regular expression
// syntax; they are matched literally in user terms.
const metachars = "[]()|"

// Escape quotes the notation metacharacters in term and leaves every other
// regular expression operator alone, so "(4,4)" matches a sync beat while
// "5.1" still matches any throw between a 5 and a 1.
func Escape(term string) string {
	var b strings.Builder
	for _, r := range term {
		if strings.ContainsRune(metachars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Matcher applies exclude and include terms to rendered notation.
// Terms are compiled once when the matcher is built.
type Matcher struct {
	exclude []*regexp.Regexp
	include []*regexp.Regexp
}

// NewMatcher compiles the terms. An invalid term is a user error.
func NewMatcher(exclude, include []string) (*Matcher, error) {
	m := &Matcher{}
	var err error
	if m.exclude, err = compileTerms(exclude); err != nil {
		return nil, err
	}
	if m.include, err = compileTerms(include); err != nil {
		return nil, err
	}
	return m, nil
}

func compileTerms(terms []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		re, err := regexp.Compile(Escape(term))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRegex, err, "invalid term %q", term)
		}
		out = append(out, re)
	}
	return out, nil
}

// HasExclude reports whether any exclude term is set.
func (m *Matcher) HasExclude() bool {
	return m != nil && len(m.exclude) > 0
}

// HasInclude reports whether any include term is set.
func (m *Matcher) HasInclude() bool {
	return m != nil && len(m.include) > 0
}

// Excluded reports whether text matches any exclude term. It is meant to be
// called on a growing prefix: once a prefix is excluded so is every
// extension of it.
func (m *Matcher) Excluded(text string) bool {
	if m == nil {
		return false
	}
	for _, re := range m.exclude {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// ExcludedPrefix is Excluded for a prefix held in a reused buffer.
func (m *Matcher) ExcludedPrefix(prefix []byte) bool {
	if m == nil {
		return false
	}
	for _, re := range m.exclude {
		if re.Match(prefix) {
			return true
		}
	}
	return false
}

// Included reports whether text matches every include term.
func (m *Matcher) Included(text string) bool {
	if m == nil {
		return true
	}
	for _, re := range m.include {
		if !re.MatchString(text) {
			return false
		}
	}
	return true
}
