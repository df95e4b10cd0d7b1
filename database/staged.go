package database

import "github.com/bnb-chain/merkle-distributor/utils"

var _ Txn = (*Staged)(nil)

// Staged is a Txn that buffers writes in memory on top of a read function.
// Stores use it to collect the writes of one Update callback before
// applying them in a single batch.
type Staged struct {
	read   func(key []byte) ([]byte, error)
	values map[string][]byte
	keys   []string
}

func NewStaged(read func(key []byte) ([]byte, error)) *Staged {
	return &Staged{
		read:   read,
		values: make(map[string][]byte),
	}
}

func (s *Staged) Get(key []byte) ([]byte, error) {
	if value, ok := s.values[string(key)]; ok {
		return utils.CopyBytes(value), nil
	}
	return s.read(key)
}

func (s *Staged) Set(key []byte, value []byte) {
	k := string(key)
	if _, ok := s.values[k]; !ok {
		s.keys = append(s.keys, k)
	}
	if value == nil {
		value = []byte{}
	}
	s.values[k] = utils.CopyBytes(value)
}

// Len is the number of distinct keys written.
func (s *Staged) Len() int {
	return len(s.keys)
}

// Each visits the staged writes in the order their keys were first set.
func (s *Staged) Each(fn func(key []byte, value []byte)) {
	for _, k := range s.keys {
		fn([]byte(k), s.values[k])
	}
}
