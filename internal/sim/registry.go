package sim

// registry is an insertion-ordered collection keyed by comparable ids.
// Every sweep the model makes over agents or artifacts iterates in
// creation order, which keeps trajectories reproducible under a fixed
// seed regardless of map iteration order.
type registry[K comparable, V any] struct {
	order []K
	items map[K]V
}

func newRegistry[K comparable, V any]() *registry[K, V] {
	return &registry[K, V]{items: make(map[K]V)}
}

func (r *registry[K, V]) add(id K, v V) {
	if _, ok := r.items[id]; !ok {
		r.order = append(r.order, id)
	}
	r.items[id] = v
}

func (r *registry[K, V]) get(id K) (V, bool) {
	v, ok := r.items[id]
	return v, ok
}

func (r *registry[K, V]) remove(id K) {
	if _, ok := r.items[id]; !ok {
		return
	}
	delete(r.items, id)
	for i, k := range r.order {
		if k == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *registry[K, V]) size() int { return len(r.order) }

// all returns the values in insertion order. The slice is fresh but the
// values are shared.
func (r *registry[K, V]) all() []V {
	out := make([]V, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.items[k])
	}
	return out
}

func (r *registry[K, V]) keys() []K {
	out := make([]K, len(r.order))
	copy(out, r.order)
	return out
}
