package models

// Identifiable is implemented by records kept in a view's cached list.
type Identifiable interface {
	GetID() string
}

// ActionKind is the kind of change applied to a cached list.
type ActionKind int

const (
	KindCreated ActionKind = iota
	KindUpdated
	KindDeleted
)

// ListAction describes one reconciliation step after a successful mutation.
type ListAction[T Identifiable] struct {
	Kind ActionKind
	ID   string
	Item T
}

// Created prepends item.
func Created[T Identifiable](item T) ListAction[T] {
	return ListAction[T]{Kind: KindCreated, ID: item.GetID(), Item: item}
}

// Updated replaces the entry with the given id by item.
func Updated[T Identifiable](id string, item T) ListAction[T] {
	return ListAction[T]{Kind: KindUpdated, ID: id, Item: item}
}

// Deleted removes the entry with the given id.
func Deleted[T Identifiable](id string) ListAction[T] {
	return ListAction[T]{Kind: KindDeleted, ID: id}
}

// Reduce returns the list that results from applying a to list. The input
// slice is never modified.
func Reduce[T Identifiable](list []T, a ListAction[T]) []T {
	switch a.Kind {
	case KindCreated:
		out := make([]T, 0, len(list)+1)
		out = append(out, a.Item)
		return append(out, list...)
	case KindUpdated:
		out := make([]T, len(list))
		copy(out, list)
		for i := range out {
			if out[i].GetID() == a.ID {
				out[i] = a.Item
			}
		}
		return out
	case KindDeleted:
		out := make([]T, 0, len(list))
		for _, item := range list {
			if item.GetID() != a.ID {
				out = append(out, item)
			}
		}
		return out
	default:
		out := make([]T, len(list))
		copy(out, list)
		return out
	}
}
