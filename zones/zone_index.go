package zones

import (
	"errors"
	"fmt"

	. "github.com/ttpr0/go-skims/util"
)

var (
	ErrUnknownZone   = errors.New("zones: unknown zone")
	ErrDuplicateZone = errors.New("zones: duplicate zone")
)

//*******************************************
// zone index
//*******************************************

// ZoneIndex maps zone ids to dense positions. Immutable after creation.
type ZoneIndex[K comparable] struct {
	ids   Array[K]
	index Dict[K, int]
}

func NewZoneIndex[K comparable](ids []K) (*ZoneIndex[K], error) {
	index := NewDict[K, int](len(ids))
	copied := NewArray[K](len(ids))
	for i, id := range ids {
		if index.ContainsKey(id) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateZone, id)
		}
		index[id] = i
		copied[i] = id
	}
	return &ZoneIndex[K]{
		ids:   copied,
		index: index,
	}, nil
}

func (self *ZoneIndex[K]) Length() int {
	return len(self.ids)
}

// Index returns the position of a zone.
func (self *ZoneIndex[K]) Index(id K) (int, bool) {
	i, ok := self.index[id]
	return i, ok
}
func (self *ZoneIndex[K]) ID(i int) K {
	return self.ids[i]
}

// IDs returns the zone ids in index order.
func (self *ZoneIndex[K]) IDs() []K {
	ids := make([]K, len(self.ids))
	copy(ids, self.ids)
	return ids
}

func (self *ZoneIndex[K]) _Get(id K) (int, error) {
	i, ok := self.index[id]
	if !ok {
		return -1, fmt.Errorf("%w: %v", ErrUnknownZone, id)
	}
	return i, nil
}
