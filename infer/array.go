package infer

import (
	"fmt"

	"github.com/siegeai/siegeschema/schema"
	"github.com/valyala/fastjson"
)

// MergeArray picks the element schema that best represents vs by majority
// vote. Each element is turned into a candidate array schema carrying the
// containsNull flag as it stood when that element was visited; the most
// frequent candidate wins, ties going to the earliest. An array with no
// elements gets schema.DefaultArray.
//
// The vote is not a numeric widening: a single long among many integers is
// outvoted, and elements seen before the first null vote for
// containsNull=false.
func MergeArray(vs []*fastjson.Value) *schema.ArraySchema {
	if a, ok := mergeArray(vs); ok {
		return a
	}
	return schema.DefaultArray()
}

// mergeArray is MergeArray without the empty-array default, for callers that
// drop empty arrays instead.
func mergeArray(vs []*fastjson.Value) (*schema.ArraySchema, bool) {
	if len(vs) == 0 {
		return nil, false
	}

	b := newBallot(len(vs))
	containsNull := false
	for _, v := range vs {
		var elem schema.Schema
		switch shapeOf(v) {
		case shapeObject:
			o, _ := v.Object()
			elem = BuildStruct(o)
		case shapeArray:
			elem = MergeArray(v.GetArray())
		case shapeNull:
			containsNull = true
			elem = schema.NewPrimitive(Classify(v))
		default:
			elem = schema.NewPrimitive(Classify(v))
		}
		b.cast(schema.NewArray(elem, containsNull))
	}

	return b.winner(), true
}

type candidate struct {
	array *schema.ArraySchema
	votes int
}

// ballot counts structurally equal candidates, keyed by their canonical
// encoding, in first-seen order.
type ballot struct {
	index      map[string]int
	candidates []candidate
}

func newBallot(n int) *ballot {
	return &ballot{
		index:      make(map[string]int, n),
		candidates: make([]candidate, 0, n),
	}
}

func (b *ballot) cast(s *schema.ArraySchema) {
	key, err := schema.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("encode vote candidate: %v", err))
	}
	if i, ok := b.index[string(key)]; ok {
		b.candidates[i].votes++
		return
	}
	b.index[string(key)] = len(b.candidates)
	b.candidates = append(b.candidates, candidate{array: s, votes: 1})
}

func (b *ballot) winner() *schema.ArraySchema {
	best := 0
	for i, c := range b.candidates {
		if c.votes > b.candidates[best].votes {
			best = i
		}
	}
	return b.candidates[best].array
}
