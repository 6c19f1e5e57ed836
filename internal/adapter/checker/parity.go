package checker

import (
	"errors"
	"iter"
	"slices"
	"sort"
	"strings"

	"bslcheck/internal/domain"
)

var (
	ErrNoClientModule = errors.New("client module not found")
	ErrNoServerModule = errors.New("server module not found")
)

// Parity compares the tagged methods of the client and server object
// modules. Each tagged method must exist on both sides with the same body,
// ignoring whitespace.
type Parity struct{}

func NewParity() *Parity {
	return &Parity{}
}

func (c *Parity) Name() string { return "parity" }

func (c *Parity) Check(p *domain.Project, changes domain.Changes) iter.Seq2[domain.Finding, error] {
	return func(yield func(domain.Finding, error) bool) {
		if p.Client == nil {
			yield(domain.Finding{}, ErrNoClientModule)
			return
		}
		if p.Server == nil {
			yield(domain.Finding{}, ErrNoServerModule)
			return
		}

		client := tagged(p.Client)
		server := tagged(p.Server)

		for _, name := range sortedKeys(client) {
			if _, ok := server[name]; ok {
				continue
			}
			f := c.finding("Не найден серверный метод: "+name, p.Client.Path, name,
				InDiff(client[name], p.Client.Path, changes))
			if !yield(f, nil) {
				return
			}
		}

		for _, name := range sortedKeys(server) {
			if _, ok := client[name]; ok {
				continue
			}
			f := c.finding("Не найден клиентский метод: "+name, p.Server.Path, name,
				InDiff(server[name], p.Server.Path, changes))
			if !yield(f, nil) {
				return
			}
		}

		for _, name := range sortedKeys(client) {
			sm, ok := server[name]
			if !ok {
				continue
			}
			cm := client[name]
			if slices.Equal(stripWhitespace(cm.Lines), stripWhitespace(sm.Lines)) {
				continue
			}
			inDiff := InDiff(cm, p.Client.Path, changes) || InDiff(sm, p.Server.Path, changes)
			f := c.finding("Метод отличается на клиенте и сервере: "+name, p.Client.Path, name, inDiff)
			if !yield(f, nil) {
				return
			}
		}
	}
}

func (c *Parity) finding(msg, module, method string, inDiff bool) domain.Finding {
	return domain.Finding{
		Check:   c.Name(),
		Message: msg,
		Module:  module,
		Method:  method,
		InDiff:  inDiff,
	}
}

func tagged(mod *domain.Module) map[string]*domain.Method {
	out := make(map[string]*domain.Method)
	for name, m := range mod.Methods {
		if m.Tagged {
			out[name] = m
		}
	}
	return out
}

func sortedKeys(m map[string]*domain.Method) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// stripWhitespace removes every whitespace character from each line while
// keeping the lines in order.
func stripWhitespace(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.Join(strings.Fields(l), "")
	}
	return out
}
