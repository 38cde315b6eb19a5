package memory

// index keeps records keyed by identifier along with their insertion order.
type index[T any] struct {
	order   []string
	records map[string]T
}

func newIndex[T any]() index[T] {
	return index[T]{records: make(map[string]T)}
}

func (i *index[T]) get(id string) (T, bool) {
	v, ok := i.records[id]
	return v, ok
}

func (i *index[T]) has(id string) bool {
	_, ok := i.records[id]
	return ok
}

func (i *index[T]) put(id string, v T) {
	if !i.has(id) {
		i.order = append(i.order, id)
	}
	i.records[id] = v
}

func (i *index[T]) remove(id string) bool {
	if !i.has(id) {
		return false
	}
	delete(i.records, id)
	for n, existing := range i.order {
		if existing == id {
			i.order = append(i.order[:n], i.order[n+1:]...)
			break
		}
	}
	return true
}

func (i *index[T]) values() []T {
	out := make([]T, 0, len(i.order))
	for _, id := range i.order {
		out = append(out, i.records[id])
	}
	return out
}

func (i *index[T]) len() int {
	return len(i.order)
}
