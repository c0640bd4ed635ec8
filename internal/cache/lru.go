package cache

import "container/list"

// LRUPolicy evicts the least recently used key: the one with the oldest
// access, update, or insertion among residents.
type LRUPolicy struct {
	order *list.List               // front = least recently used, back = most recently used
	elems map[string]*list.Element // key -> node in order
}

// NewLRUPolicy constructs an empty LRU policy.
func NewLRUPolicy() EvictionPolicy {
	return &LRUPolicy{
		order: list.New(),
		elems: make(map[string]*list.Element),
	}
}

func (p *LRUPolicy) touch(key string) {
	if el, ok := p.elems[key]; ok {
		p.order.MoveToBack(el)
		return
	}
	p.elems[key] = p.order.PushBack(key)
}

func (p *LRUPolicy) OnAdd(_ View, key string)    { p.touch(key) }
func (p *LRUPolicy) OnUpdate(_ View, key string) { p.touch(key) }
func (p *LRUPolicy) OnAccess(_ View, key string) { p.touch(key) }

func (p *LRUPolicy) OnDelete(_ View, key string) {
	if el, ok := p.elems[key]; ok {
		p.order.Remove(el)
		delete(p.elems, key)
	}
}

func (p *LRUPolicy) SelectEvictionKey(_ View) string {
	front := p.order.Front()
	return front.Value.(string)
}
