package selection

import (
	"sort"

	"cellgrip/internal/domain"
)

// CellSet is an unordered set of cell addresses
type CellSet struct {
	cells map[domain.CellAddress]struct{}
}

// NewCellSet creates a set holding addrs
func NewCellSet(addrs ...domain.CellAddress) *CellSet {
	s := &CellSet{cells: make(map[domain.CellAddress]struct{}, len(addrs))}
	for _, a := range addrs {
		s.Add(a)
	}
	return s
}

func (s *CellSet) Add(addr domain.CellAddress) {
	s.cells[addr] = struct{}{}
}

func (s *CellSet) Remove(addr domain.CellAddress) {
	delete(s.cells, addr)
}

func (s *CellSet) Has(addr domain.CellAddress) bool {
	_, ok := s.cells[addr]
	return ok
}

func (s *CellSet) Len() int {
	return len(s.cells)
}

func (s *CellSet) Clear() {
	s.cells = make(map[domain.CellAddress]struct{})
}

// Addresses returns the members ordered by row, then by column position
// in columns (columns not in the list last, by name)
func (s *CellSet) Addresses(columns []domain.Column) []domain.CellAddress {
	out := make([]domain.CellAddress, 0, len(s.cells))
	for a := range s.cells {
		out = append(out, a)
	}

	rank := make(map[string]int, len(columns))
	for i, col := range columns {
		rank[col.Field] = i
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		ri, iok := rank[out[i].Column]
		rj, jok := rank[out[j].Column]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return out[i].Column < out[j].Column
		}
	})
	return out
}
