package view

// Match is one search hit: a span inside a record, ordered over the
// whole view by (Record, Start).
type Match struct {
	Record int
	Start  int
	End    int
}

// Position anchors a navigation fallback when there is no current match,
// typically derived from the record at the top or bottom of the viewport.
type Position struct {
	Record int
	Offset int
}

func (m Match) before(other Match) bool {
	if m.Record != other.Record {
		return m.Record < other.Record
	}
	return m.Start < other.Start
}

func (m Match) atOrAfter(p Position) bool {
	if m.Record != p.Record {
		return m.Record > p.Record
	}
	return m.Start >= p.Offset
}

func (m Match) atOrBefore(p Position) bool {
	if m.Record != p.Record {
		return m.Record < p.Record
	}
	return m.Start <= p.Offset
}

// Next returns the match that follows current in the requested
// direction, wrapping around to the opposite end when no further match
// exists. With no current match it returns the first match at or after
// from (forwards) or the last match at or before from (backwards),
// again wrapping. A nil result means matches is empty.
func Next(matches []Match, current *Match, backwards bool, from Position) *Match {
	if len(matches) == 0 {
		return nil
	}

	if current == nil {
		if backwards {
			for i := len(matches) - 1; i >= 0; i-- {
				if matches[i].atOrBefore(from) {
					m := matches[i]
					return &m
				}
			}
			m := matches[len(matches)-1]
			return &m
		}
		for _, m := range matches {
			if m.atOrAfter(from) {
				m := m
				return &m
			}
		}
		m := matches[0]
		return &m
	}

	if backwards {
		for i := len(matches) - 1; i >= 0; i-- {
			if matches[i].before(*current) {
				m := matches[i]
				return &m
			}
		}
		m := matches[len(matches)-1]
		return &m
	}
	for _, m := range matches {
		if current.before(m) {
			m := m
			return &m
		}
	}
	m := matches[0]
	return &m
}
