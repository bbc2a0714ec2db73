// Package memory implements the repository ports on mutex-guarded maps.
// Ids are Mongo object ids so both stores hand out identical formats.
package memory

import (
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds every collection of an in-memory shop.
type Store struct {
	Users    *UserRepository
	Products *ProductRepository
	Orders   *OrderRepository
}

func NewStore() *Store {
	return &Store{
		Users:    &UserRepository{byID: make(map[string]userRecord)},
		Products: &ProductRepository{byID: make(map[string]productRecord)},
		Orders:   &OrderRepository{byID: make(map[string]orderRecord)},
	}
}

type collection struct {
	mu sync.RWMutex
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

// sortedKeys returns map keys in ascending id order, which is insertion order
// for object ids created by this process.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
