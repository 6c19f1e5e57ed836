package bsl

import (
	"fmt"
	"regexp"

	"bslcheck/internal/domain"
)

// DefaultTag marks a method that must exist identically in the client and
// server object modules.
const DefaultTag = `Метод присутствует в клиентском и серверном модулях`

// RE2 \s is ASCII only; \p{Zs} adds non-breaking and other Unicode spaces.
var (
	reMethodStart = regexp.MustCompile(`^[\s\p{Zs}]*(Функция|Процедура)[\s\p{Zs}]+([\p{L}\p{N}_]+)`)
	reMethodEnd   = regexp.MustCompile(`^[\s\p{Zs}]*(?:КонецФункции|КонецПроцедуры)`)
	reReturn      = regexp.MustCompile(`^[\s\p{Zs}]*Возврат`)
	reDirective   = regexp.MustCompile(`^[\s\p{Zs}]*&([\p{L}\p{N}_]+)`)
)

// Classifier recognizes the line kinds the parser reacts to. Only the tag
// pattern is configurable.
type Classifier struct {
	tag *regexp.Regexp
}

func NewClassifier(tag string) (*Classifier, error) {
	if tag == "" {
		tag = DefaultTag
	}
	re, err := regexp.Compile(tag)
	if err != nil {
		return nil, fmt.Errorf("invalid tag pattern %q: %w", tag, err)
	}
	return &Classifier{tag: re}, nil
}

// MethodStart returns the kind and name of a method declared on line.
func (c *Classifier) MethodStart(line string) (domain.MethodKind, string, bool) {
	m := reMethodStart.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return domain.MethodKind(m[1]), m[2], true
}

func (c *Classifier) MethodEnd(line string) bool {
	return reMethodEnd.MatchString(line)
}

func (c *Classifier) Return(line string) bool {
	return reReturn.MatchString(line)
}

// Tag matches the marker anywhere on the line.
func (c *Classifier) Tag(line string) bool {
	return c.tag.MatchString(line)
}

// Directive returns the identifier of an &Directive annotation.
func (c *Classifier) Directive(line string) (string, bool) {
	m := reDirective.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}
