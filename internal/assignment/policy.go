package assignment

import (
	"fmt"
	"sort"
	"strings"
)

// RoomClass is the party-size class a preference order is keyed by.
type RoomClass int

const (
	ClassSingle RoomClass = iota + 1
	ClassDouble
	ClassTriple
	ClassQuadruple
)

func (c RoomClass) String() string {
	switch c {
	case ClassSingle:
		return "single"
	case ClassDouble:
		return "double"
	case ClassTriple:
		return "triple"
	case ClassQuadruple:
		return "quadruple"
	}
	return fmt.Sprintf("class(%d)", int(c))
}

func ParseRoomClass(s string) (RoomClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return ClassSingle, nil
	case "double":
		return ClassDouble, nil
	case "triple":
		return ClassTriple, nil
	case "quadruple":
		return ClassQuadruple, nil
	}
	return 0, fmt.Errorf("unknown room class %q", s)
}

// PreferenceClass maps parties of up to MaxGuests (and more than the previous
// class) to an ordered list of room ids, most preferred first.
type PreferenceClass struct {
	Class     RoomClass
	MaxGuests int32
	Order     []int32
}

// Policy is the total mapping from party size to preference order. Parties
// larger than every class use Fallback; an empty Fallback makes them
// unsupported.
type Policy struct {
	classes  []PreferenceClass
	fallback []int32
}

// DefaultPolicy is the guest house's table for rooms 1-6: small rooms stay
// free for small parties and room 3 is kept for families.
func DefaultPolicy() Policy {
	quadruple := []int32{3, 5, 6, 1, 2, 4}
	p, _ := NewPolicy([]PreferenceClass{
		{Class: ClassSingle, MaxGuests: 1, Order: []int32{2, 1, 4, 5, 6, 3}},
		{Class: ClassDouble, MaxGuests: 2, Order: []int32{1, 2, 4, 5, 6, 3}},
		{Class: ClassTriple, MaxGuests: 3, Order: []int32{3, 5, 6, 1, 2, 4}},
		{Class: ClassQuadruple, MaxGuests: 4, Order: quadruple},
	}, quadruple)
	return p
}

func NewPolicy(classes []PreferenceClass, fallback []int32) (Policy, error) {
	sorted := make([]PreferenceClass, len(classes))
	for i, c := range classes {
		if c.MaxGuests < 1 {
			return Policy{}, fmt.Errorf("class %s: max guests must be positive", c.Class)
		}
		if len(c.Order) == 0 {
			return Policy{}, fmt.Errorf("class %s: empty room order", c.Class)
		}
		sorted[i] = PreferenceClass{Class: c.Class, MaxGuests: c.MaxGuests, Order: append([]int32(nil), c.Order...)}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MaxGuests < sorted[j].MaxGuests })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].MaxGuests == sorted[i-1].MaxGuests {
			return Policy{}, fmt.Errorf("classes %s and %s both cover %d guests", sorted[i-1].Class, sorted[i].Class, sorted[i].MaxGuests)
		}
	}
	return Policy{classes: sorted, fallback: append([]int32(nil), fallback...)}, nil
}

// ClassFor returns the class covering partySize; false means the fallback
// order (if any) applies.
func (p Policy) ClassFor(partySize int32) (RoomClass, bool) {
	for _, c := range p.classes {
		if partySize <= c.MaxGuests {
			return c.Class, true
		}
	}
	return 0, false
}

// PreferredRoomOrder returns the tie-break priority of room ids for a party.
func (p Policy) PreferredRoomOrder(partySize int32) ([]int32, error) {
	if partySize < 1 {
		return nil, precondition("party_size", "must be at least 1, got %d", partySize)
	}
	for _, c := range p.classes {
		if partySize <= c.MaxGuests {
			return c.Order, nil
		}
	}
	if len(p.fallback) > 0 {
		return p.fallback, nil
	}
	return nil, fmt.Errorf("%w: %d guests", ErrUnsupportedPartySize, partySize)
}

// positions indexes an order by room id, keeping the first occurrence of a
// duplicated id.
func positions(order []int32) map[int32]int {
	pos := make(map[int32]int, len(order))
	for i, id := range order {
		if _, seen := pos[id]; !seen {
			pos[id] = i
		}
	}
	return pos
}
