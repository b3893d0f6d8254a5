package rt6

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ajustes-contables/rt6/internal/id"
	"github.com/ajustes-contables/rt6/internal/indices"
)

var (
	ErrPartidaNotFound = errors.New("partida not found")
	ErrLotNotFound     = errors.New("lot not found")
)

// Partidas is an immutable snapshot of partida sources. Commands return a
// new snapshot and leave the receiver untouched.
type Partidas struct {
	sources []Source
}

// NewPartidas builds a snapshot. Sources are copied and ordered by code and ID.
func NewPartidas(sources []Source) Partidas {
	cp := make([]Source, 0, len(sources))
	for _, s := range sources {
		cp = append(cp, s.clone())
	}
	sortSources(cp)
	return Partidas{sources: cp}
}

// Sources returns a copy of every source.
func (p Partidas) Sources() []Source {
	out := make([]Source, len(p.sources))
	for i, s := range p.sources {
		out[i] = s.clone()
	}
	return out
}

// Len returns the number of sources.
func (p Partidas) Len() int { return len(p.sources) }

// Get returns the source with the given ID.
func (p Partidas) Get(partidaID string) (Source, bool) {
	i := p.index(partidaID)
	if i < 0 {
		return Source{}, false
	}
	return p.sources[i].clone(), true
}

// AccountSet returns the accounts covered by some partida.
func (p Partidas) AccountSet() map[string]bool {
	out := make(map[string]bool, len(p.sources))
	for _, s := range p.sources {
		if s.AccountID != "" {
			out[s.AccountID] = true
		}
	}
	return out
}

// Add appends a manual source with a fresh ID. Lots without an ID are numbered.
func (p Partidas) Add(src Source) (Partidas, Source) {
	src = src.clone()
	src.ID = id.ManualPartidaID()
	src.Manual = true
	numberLots(&src)

	next := p.Sources()
	next = append(next, src)
	sortSources(next)
	return Partidas{sources: next}, src
}

// Edit replaces the source with src.ID. Edited sources become manual so a
// later Recompute keeps them.
func (p Partidas) Edit(src Source) (Partidas, error) {
	i := p.index(src.ID)
	if i < 0 {
		return p, fmt.Errorf("editing %s: %w", src.ID, ErrPartidaNotFound)
	}
	src = src.clone()
	src.Manual = true
	numberLots(&src)

	next := p.Sources()
	next[i] = src
	sortSources(next)
	return Partidas{sources: next}, nil
}

// Delete removes a source. An auto source reappears on the next Recompute.
func (p Partidas) Delete(partidaID string) (Partidas, error) {
	i := p.index(partidaID)
	if i < 0 {
		return p, fmt.Errorf("deleting %s: %w", partidaID, ErrPartidaNotFound)
	}
	next := p.Sources()
	next = append(next[:i], next[i+1:]...)
	return Partidas{sources: next}, nil
}

// EditLot replaces one lot, keeping its ID.
func (p Partidas) EditLot(lotID string, lot Lot) (Partidas, error) {
	return p.updateLot(lotID, func(src *Source, j int) {
		lot.ID = lotID
		src.Lots[j] = lot
	})
}

// DeleteLot removes one lot from its partida.
func (p Partidas) DeleteLot(lotID string) (Partidas, error) {
	return p.updateLot(lotID, func(src *Source, j int) {
		src.Lots = append(src.Lots[:j], src.Lots[j+1:]...)
	})
}

func (p Partidas) updateLot(lotID string, fn func(src *Source, j int)) (Partidas, error) {
	partidaID, _, err := id.ParseLotID(lotID)
	if err != nil {
		return p, err
	}
	i := p.index(partidaID)
	if i < 0 {
		return p, fmt.Errorf("lot %s: %w", lotID, ErrPartidaNotFound)
	}

	next := p.Sources()
	src := &next[i]
	for j, l := range src.Lots {
		if l.ID != lotID {
			continue
		}
		fn(src, j)
		src.Manual = true
		return Partidas{sources: next}, nil
	}
	return p, fmt.Errorf("lot %s: %w", lotID, ErrLotNotFound)
}

// Recompute rebuilds the snapshot from freshly analyzed sources. Previous
// auto sources are dropped wholesale; manual sources are kept and shadow
// any auto source for the same account.
func (p Partidas) Recompute(auto []Source) Partidas {
	var next []Source
	covered := make(map[string]bool)
	for _, s := range p.sources {
		if !s.Manual {
			continue
		}
		next = append(next, s.clone())
		if s.AccountID != "" {
			covered[s.AccountID] = true
		}
	}
	for _, s := range auto {
		if covered[s.AccountID] {
			continue
		}
		s = s.clone()
		s.Manual = false
		next = append(next, s)
	}
	sortSources(next)
	return Partidas{sources: next}
}

// Compute restates every source to the closing period.
func (p Partidas) Compute(table indices.Table, closing indices.Period) []Partida {
	out := make([]Partida, 0, len(p.sources))
	for _, s := range p.sources {
		out = append(out, ComputePartida(s, table, closing))
	}
	return out
}

func (p Partidas) index(partidaID string) int {
	for i, s := range p.sources {
		if s.ID == partidaID {
			return i
		}
	}
	return -1
}

// numberLots assigns IDs to lots that lack one or carry another partida's ID.
func numberLots(src *Source) {
	used := make(map[string]bool)
	for i, l := range src.Lots {
		owner, _, err := id.ParseLotID(l.ID)
		if err != nil || owner != src.ID || used[l.ID] {
			src.Lots[i].ID = ""
			continue
		}
		used[l.ID] = true
	}
	seq := 0
	for i := range src.Lots {
		if src.Lots[i].ID != "" {
			continue
		}
		for {
			seq++
			lotID := id.FormatLotID(src.ID, seq)
			if !used[lotID] {
				src.Lots[i].ID = lotID
				used[lotID] = true
				break
			}
		}
	}
}

func sortSources(s []Source) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Code != s[j].Code {
			return s[i].Code < s[j].Code
		}
		return s[i].ID < s[j].ID
	})
}
