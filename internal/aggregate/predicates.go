// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"fmt"

	"github.com/pdiddy/job-matcher/internal/text"
	"github.com/pdiddy/job-matcher/pkg/types"
)

// Predicate is a named test over a listing. Predicates are evaluated over
// normalized text, so "Northern Ireland" and "NORTHERN IRELAND," agree.
type Predicate struct {
	Name  string
	Match func(types.Listing) bool
}

// AnyTerms keeps listings whose text contains at least one of terms.
func AnyTerms(name string, terms ...string) Predicate {
	return Predicate{
		Name: name,
		Match: func(l types.Listing) bool {
			_, ok := text.FirstPhrase(text.Tokens(l.Text()), terms)
			return ok
		},
	}
}

// NoTerms keeps listings whose text contains none of terms. It is the
// shape of red-flag exclusions such as "commission only".
func NoTerms(name string, terms ...string) Predicate {
	return Predicate{
		Name: name,
		Match: func(l types.Listing) bool {
			_, ok := text.FirstPhrase(text.Tokens(l.Text()), terms)
			return !ok
		},
	}
}

// LocationIn keeps listings whose location names one of places. Listings
// without a location are judged on their full text instead.
func LocationIn(name string, places ...string) Predicate {
	return Predicate{
		Name: name,
		Match: func(l types.Listing) bool {
			if loc := text.Tokens(l.Location); len(loc) > 0 {
				if _, ok := text.FirstPhrase(loc, places); ok {
					return true
				}
			}
			_, ok := text.FirstPhrase(text.Tokens(l.Text()), places)
			return ok
		},
	}
}

// All keeps listings matched by every one of preds.
func All(name string, preds ...Predicate) Predicate {
	return Predicate{
		Name: name,
		Match: func(l types.Listing) bool {
			for _, p := range preds {
				if !p.Match(l) {
					return false
				}
			}
			return true
		},
	}
}

// Registry holds predicates by name.
type Registry map[string]Predicate

// NewRegistry builds predicates from their declarations.
func NewRegistry(cfgs []types.PredicateConfig) (Registry, error) {
	reg := make(Registry, len(cfgs))
	for _, c := range cfgs {
		if c.Name == "" {
			return nil, fmt.Errorf("predicate without a name")
		}
		if len(c.Terms) == 0 {
			return nil, fmt.Errorf("predicate %q has no terms", c.Name)
		}
		if _, dup := reg[c.Name]; dup {
			return nil, fmt.Errorf("predicate %q declared twice", c.Name)
		}
		switch c.Mode {
		case types.PredicateAny, "":
			reg[c.Name] = AnyTerms(c.Name, c.Terms...)
		case types.PredicateNone:
			reg[c.Name] = NoTerms(c.Name, c.Terms...)
		case types.PredicateLocation:
			reg[c.Name] = LocationIn(c.Name, c.Terms...)
		default:
			return nil, fmt.Errorf("predicate %q: unknown mode %q", c.Name, c.Mode)
		}
	}
	return reg, nil
}

// Lookup resolves names in order.
func (r Registry) Lookup(names ...string) ([]Predicate, error) {
	preds := make([]Predicate, 0, len(names))
	for _, n := range names {
		p, ok := r[n]
		if !ok {
			return nil, fmt.Errorf("unknown predicate %q", n)
		}
		preds = append(preds, p)
	}
	return preds, nil
}
