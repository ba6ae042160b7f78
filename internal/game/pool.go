package game

import (
	"encoding/json"
	"math/rand"
	"regexp"
	"sort"
	"strings"
)

// Candidate is one poolable entity with the connection count reported by
// the graph service.
type Candidate struct {
	Name        string `json:"name"`
	Connections int    `json:"connections"`
}

// Names made of anything other than letters, colons, and spaces don't
// resolve in the graph service, so they are denylisted on sight.
var invalidName = regexp.MustCompile(`[^:a-zA-Z ]`)

// Pool tracks which entities are still usable as a seed or answer within a
// single session. remaining keeps the graph service's popularity order
// (most-connected first); byName mirrors it for O(1) lookup; the denylist
// holds lower-cased names and only ever grows.
type Pool struct {
	remaining []Candidate
	byName    map[string]Candidate
	denylist  map[string]struct{}
}

func NewPool() *Pool {
	return &Pool{
		byName:   make(map[string]Candidate),
		denylist: make(map[string]struct{}),
	}
}

// Seed appends candidates in order, skipping denylisted names and
// auto-denylisting structurally invalid ones. A non-negative limit stops
// intake after that many accepted entries; -1 means unlimited.
func (p *Pool) Seed(candidates []Candidate, limit int) {
	count := 0
	for _, c := range candidates {
		if limit >= 0 && count == limit {
			break
		}
		if c.Name == "" || invalidName.MatchString(c.Name) {
			p.addToDenylist(c.Name)
			continue
		}
		if p.isDenylisted(c.Name) {
			continue
		}
		p.remaining = append(p.remaining, c)
		p.byName[c.Name] = c
		count++
	}
}

// Deny removes the name from the pool, if present, and adds it to the
// denylist. Denying twice is the same as denying once.
func (p *Pool) Deny(name string) {
	for i, c := range p.remaining {
		if c.Name == name {
			p.remaining = append(p.remaining[:i], p.remaining[i+1:]...)
			delete(p.byName, name)
			break
		}
	}
	p.addToDenylist(name)
}

func (p *Pool) addToDenylist(name string) {
	if name == "" {
		return
	}
	p.denylist[strings.ToLower(name)] = struct{}{}
}

func (p *Pool) isDenylisted(name string) bool {
	_, ok := p.denylist[strings.ToLower(name)]
	return ok
}

// IsEligible reports whether name is still in the pool.
func (p *Pool) IsEligible(name string) bool {
	_, ok := p.byName[name]
	return ok
}

// FilterEligible returns the names still in the pool, preserving order.
func (p *Pool) FilterEligible(names []string) []string {
	var out []string
	for _, n := range names {
		if p.IsEligible(n) {
			out = append(out, n)
		}
	}
	return out
}

// SampleFromTop picks uniformly among the first min(k, len) remaining
// candidates, biasing selection toward well-connected entities without
// always returning the same one. Empty pool yields "".
func (p *Pool) SampleFromTop(k int) string {
	if len(p.remaining) == 0 || k < 1 {
		return ""
	}
	window := min(k, len(p.remaining))
	return p.remaining[rand.Intn(window)].Name
}

// SampleSeed is SampleFromTop with the minimum-pool rule for seeds: a
// question needs the seed plus three answers, so fewer than 4 remaining
// candidates means no seed is available.
func (p *Pool) SampleSeed(k int) string {
	if len(p.remaining) < 4 {
		return ""
	}
	return p.SampleFromTop(k)
}

func (p *Pool) Len() int { return len(p.remaining) }

type poolState struct {
	Remaining []Candidate `json:"remaining"`
	Denylist  []string    `json:"denylist"`
}

func (p *Pool) MarshalJSON() ([]byte, error) {
	st := poolState{Remaining: p.remaining}
	for n := range p.denylist {
		st.Denylist = append(st.Denylist, n)
	}
	sort.Strings(st.Denylist)
	return json.Marshal(st)
}

func (p *Pool) UnmarshalJSON(data []byte) error {
	var st poolState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	p.remaining = st.Remaining
	p.byName = make(map[string]Candidate, len(st.Remaining))
	for _, c := range st.Remaining {
		p.byName[c.Name] = c
	}
	p.denylist = make(map[string]struct{}, len(st.Denylist))
	for _, n := range st.Denylist {
		p.denylist[n] = struct{}{}
	}
	return nil
}
