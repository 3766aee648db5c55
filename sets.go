package cds

import (
	"github.com/cnf/structhash"
)

// The sets below are hash sets over value types. Keys are structhash digests
// of the element, which makes membership independent of insertion order and,
// for descriptors, independent of the Force flag (tagged `hash:"-"`).

func descriptorKey(d Descriptor) string {
	return string(structhash.Md5(d, 1))
}

func epnKey(pn EPN) string {
	return string(structhash.Md5(pn, 1))
}

// --- Descriptor sets --------------------------------------------------------

// DescriptorSet is a hash set of descriptors. The zero value is not usable;
// create sets with NewDescriptorSet. Sets are not safe for concurrent use,
// callers guard them (see package engine).
type DescriptorSet struct {
	items map[string]Descriptor
}

// NewDescriptorSet creates a set containing the given descriptors.
func NewDescriptorSet(ds ...Descriptor) *DescriptorSet {
	s := &DescriptorSet{items: make(map[string]Descriptor)}
	for _, d := range ds {
		s.Add(d)
	}
	return s
}

// Add inserts d and reports whether d was not yet a member. Adding a
// descriptor equal to a present one (possibly differing in Force) is a no-op.
func (s *DescriptorSet) Add(d Descriptor) bool {
	k := descriptorKey(d)
	if _, ok := s.items[k]; ok {
		return false
	}
	s.items[k] = d
	return true
}

// Contains reports membership of d, ignoring Force.
func (s *DescriptorSet) Contains(d Descriptor) bool {
	_, ok := s.items[descriptorKey(d)]
	return ok
}

// Remove deletes d and reports whether it was a member.
func (s *DescriptorSet) Remove(d Descriptor) bool {
	k := descriptorKey(d)
	if _, ok := s.items[k]; !ok {
		return false
	}
	delete(s.items, k)
	return true
}

// Pop removes and returns an arbitrary member. Engines use descriptor sets as
// worklists; the processing order is immaterial for the output sets.
func (s *DescriptorSet) Pop() (Descriptor, bool) {
	for k, d := range s.items {
		delete(s.items, k)
		return d, true
	}
	return Descriptor{}, false
}

// Size returns the number of members.
func (s *DescriptorSet) Size() int { return len(s.items) }

// Empty is true iff the set has no members.
func (s *DescriptorSet) Empty() bool { return len(s.items) == 0 }

// Each calls f for every member, in no particular order.
func (s *DescriptorSet) Each(f func(Descriptor)) {
	for _, d := range s.items {
		f(d)
	}
}

// Values returns the members as a fresh slice, in no particular order.
func (s *DescriptorSet) Values() []Descriptor {
	vals := make([]Descriptor, 0, len(s.items))
	for _, d := range s.items {
		vals = append(vals, d)
	}
	return vals
}

// Copy returns a new set with the same members.
func (s *DescriptorSet) Copy() *DescriptorSet {
	c := &DescriptorSet{items: make(map[string]Descriptor, len(s.items))}
	for k, d := range s.items {
		c.items[k] = d
	}
	return c
}

// Equals reports pure set equality, ignoring Force flags.
func (s *DescriptorSet) Equals(other *DescriptorSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for k := range s.items {
		if _, ok := other.items[k]; !ok {
			return false
		}
	}
	return true
}

// --- EPN sets ---------------------------------------------------------------

// EPNSet is a hash set of extended packed nodes. It grows monotonically;
// there is no removal. Not safe for concurrent use.
type EPNSet struct {
	items map[string]EPN
}

// NewEPNSet creates a set containing the given EPNs.
func NewEPNSet(pns ...EPN) *EPNSet {
	s := &EPNSet{items: make(map[string]EPN)}
	for _, pn := range pns {
		s.Add(pn)
	}
	return s
}

// Add inserts pn and reports whether it was not yet a member.
func (s *EPNSet) Add(pn EPN) bool {
	k := epnKey(pn)
	if _, ok := s.items[k]; ok {
		return false
	}
	s.items[k] = pn
	return true
}

// Contains reports membership of pn.
func (s *EPNSet) Contains(pn EPN) bool {
	_, ok := s.items[epnKey(pn)]
	return ok
}

// Size returns the number of members.
func (s *EPNSet) Size() int { return len(s.items) }

// Each calls f for every member, in no particular order.
func (s *EPNSet) Each(f func(EPN)) {
	for _, pn := range s.items {
		f(pn)
	}
}

// Values returns the members as a fresh slice, in no particular order.
func (s *EPNSet) Values() []EPN {
	vals := make([]EPN, 0, len(s.items))
	for _, pn := range s.items {
		vals = append(vals, pn)
	}
	return vals
}

// Equals reports pure set equality.
func (s *EPNSet) Equals(other *EPNSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for k := range s.items {
		if _, ok := other.items[k]; !ok {
			return false
		}
	}
	return true
}
