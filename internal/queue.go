package internal

type EffectQueue struct {
	effects map[EffectType][]*Effect
}

func NewEffectQueue() *EffectQueue {
	effects := make(map[EffectType][]*Effect)
	effects[EffectRender] = make([]*Effect, 0)
	effects[EffectUser] = make([]*Effect, 0)

	return &EffectQueue{effects}
}

// Enqueue adds the effect once, whatever the number of writes that dirtied it.
func (q *EffectQueue) Enqueue(e *Effect) {
	if !e.markQueued() {
		return
	}

	q.effects[e.typ] = append(q.effects[e.typ], e)
}

// Drain empties the queue, render effects first.
func (q *EffectQueue) Drain() []*Effect {
	var out []*Effect
	for _, typ := range []EffectType{EffectRender, EffectUser} {
		for _, e := range q.effects[typ] {
			e.clearQueued()
			out = append(out, e)
		}
		q.ClearEffects(typ)
	}

	return out
}

func (q *EffectQueue) Len() int {
	return len(q.effects[EffectRender]) + len(q.effects[EffectUser])
}

func (q *EffectQueue) ClearEffects(typ EffectType) {
	q.effects[typ] = q.effects[typ][:0]
}
