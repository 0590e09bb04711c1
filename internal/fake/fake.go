// Package fake generates random JSON documents for tests and benchmarks.
package fake

import (
	"math"
	"math/rand"

	"github.com/valyala/fastjson"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generator is not safe for concurrent use.
type Generator struct {
	MaxDepth int
	MaxKeys  int
	MaxItems int

	r     *rand.Rand
	arena fastjson.Arena
}

func New(seed int64) *Generator {
	return &Generator{
		MaxDepth: 5,
		MaxKeys:  12,
		MaxItems: 6,
		r:        rand.New(rand.NewSource(seed)),
	}
}

// Object returns a random document with an object root.
func (g *Generator) Object() []byte {
	g.arena.Reset()
	return g.object(0).MarshalTo(nil)
}

// Array returns a random document with an array root, possibly empty.
func (g *Generator) Array() []byte {
	g.arena.Reset()
	return g.array(0).MarshalTo(nil)
}

func (g *Generator) String(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[g.r.Intn(len(letters))]
	}
	return string(b)
}

func (g *Generator) object(depth int) *fastjson.Value {
	o := g.arena.NewObject()
	nkeys := 1 + g.r.Intn(g.MaxKeys)
	for i := 0; i < nkeys; i++ {
		o.Set(g.String(1+g.r.Intn(32)), g.value(depth+1))
	}
	return o
}

func (g *Generator) array(depth int) *fastjson.Value {
	a := g.arena.NewArray()
	n := g.r.Intn(g.MaxItems + 1)
	// arrays lean towards one element kind, like real payloads do
	kind := g.r.Intn(7)
	for i := 0; i < n; i++ {
		if g.r.Intn(100) < 20 {
			a.SetArrayItem(i, g.valueOf(g.r.Intn(7), depth+1))
		} else {
			a.SetArrayItem(i, g.valueOf(kind, depth+1))
		}
	}
	return a
}

func (g *Generator) value(depth int) *fastjson.Value {
	return g.valueOf(g.r.Intn(7), depth)
}

func (g *Generator) valueOf(kind, depth int) *fastjson.Value {
	if depth+1 >= g.MaxDepth && kind >= 5 {
		kind = 0
	}
	switch kind {
	case 0:
		return g.arena.NewString(g.String(1 + g.r.Intn(32)))
	case 1:
		if g.r.Intn(10) == 0 {
			return g.arena.NewNumberString("4294967296")
		}
		return g.arena.NewNumberInt(g.r.Intn(math.MaxInt32))
	case 2:
		return g.arena.NewNumberFloat64(g.r.Float64()*1000 + 0.5)
	case 3:
		if g.r.Intn(2) == 0 {
			return g.arena.NewTrue()
		}
		return g.arena.NewFalse()
	case 4:
		return g.arena.NewNull()
	case 5:
		return g.object(depth)
	default:
		return g.array(depth)
	}
}
