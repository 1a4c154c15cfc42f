package poly

import (
	"fmt"
	"strings"
)

// StmtPoly is the polyhedral summary of one Provide statement (spec.md
// §3, §4.5): the domain and schedule it executes under, the single
// array write it performs, and every array read reachable from its
// value expressions.
type StmtPoly struct {
	Domain   PolytopeDomain
	Schedule PolytopeSchedule
	Write    *FuncPoly
	Reads    []*FuncPoly
}

// NewStmtPoly starts a statement summary with its write reference; reads
// are appended afterward via AddRead, once the Builder has collected them
// from the Provide's value expressions.
func NewStmtPoly(write *FuncPoly) *StmtPoly {
	return &StmtPoly{
		Domain:   write.Domain,
		Schedule: write.Schedule,
		Write:    write,
	}
}

// AddRead records one array read found in the statement's value
// expressions.
func (s *StmtPoly) AddRead(read *FuncPoly) {
	s.Reads = append(s.Reads, read)
}

// References returns the write followed by every read. The Polytope
// facade does not use it: it enumerates pairwise dependence candidates
// over Polytope.All, in discovery order, where a statement's reads come
// before its write.
func (s *StmtPoly) References() []*FuncPoly {
	refs := make([]*FuncPoly, 0, 1+len(s.Reads))
	refs = append(refs, s.Write)
	refs = append(refs, s.Reads...)
	return refs
}

func (s *StmtPoly) String() string {
	reads := make([]string, len(s.Reads))
	for i, r := range s.Reads {
		reads[i] = r.String()
	}
	return fmt.Sprintf("%s @ %s <- {%s}", s.Write, s.Schedule, strings.Join(reads, ", "))
}
