// Package document implements the nested-collection mutator shared by the
// post (comments, likes) and profile (experience, education) documents:
// locate an entry inside a parent's ordered list, verify that the caller
// owns it, then mutate the list without disturbing the order of the
// remaining entries. Lists are kept newest first; new entries go to the
// front.
package document

import "errors"

// Sentinel errors returned by Remove and Update. Callers translate them
// into their own error taxonomy.
var (
	// ErrEntryNotFound means no entry with the given id exists in the list.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrNotOwner means the entry exists but belongs to another user.
	ErrNotOwner = errors.New("entry owned by another user")
)

// Entry is an item embedded in a parent document's ordered list.
type Entry interface {
	// EntryID returns the identifier assigned at creation, unique within
	// the parent's list.
	EntryID() string
	// OwnerID returns the id of the user that created the entry. The only
	// identity allowed to update or remove it.
	OwnerID() uint
}

// Prepend returns a new list with item at the front. The ordered lists are
// newest first, so this governs default read order.
func Prepend[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}

// Find returns the index of the entry with the given id, or -1. Matching is
// exact string equality; the first match in iteration order wins.
func Find[T Entry](list []T, id string) int {
	for i, e := range list {
		if e.EntryID() == id {
			return i
		}
	}
	return -1
}

// Remove locates the entry with the given id, verifies callerID owns it and
// returns a new list without that entry, preserving the relative order of
// the rest. On error the input list is returned unchanged.
func Remove[T Entry](list []T, id string, callerID uint) ([]T, error) {
	i := Find(list, id)
	if i < 0 {
		return list, ErrEntryNotFound
	}
	if list[i].OwnerID() != callerID {
		return list, ErrNotOwner
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...), nil
}

// Update locates the entry with the given id, verifies callerID owns it and
// returns a new list with patch applied to that entry in place, keeping its
// original position. On error the input list is returned unchanged.
func Update[T Entry](list []T, id string, callerID uint, patch func(T) T) ([]T, error) {
	i := Find(list, id)
	if i < 0 {
		return list, ErrEntryNotFound
	}
	if list[i].OwnerID() != callerID {
		return list, ErrNotOwner
	}
	out := make([]T, len(list))
	copy(out, list)
	out[i] = patch(out[i])
	return out, nil
}

// Toggle removes the first element satisfying match, or prepends build()
// when none does. It reports whether an element was added. Calling it twice
// with the same match restores the original list contents (the like/unlike
// contract).
func Toggle[T any](list []T, match func(T) bool, build func() T) ([]T, bool) {
	for i, e := range list {
		if match(e) {
			out := make([]T, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...), false
		}
	}
	return Prepend(list, build()), true
}
