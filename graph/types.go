package graph

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"

	"github.com/polypheny/polytype/polytype"
)

// TypeTree describes a type and its nested component, key, value and field types.
func TypeTree(t *polytype.Type) *Node {
	n := NewNode(t.Kind().String())
	n.AddField("digest", t.Digest())
	if t.Kind().AllowsPrecNoScale() {
		n.AddField("precision", precisionString(t.Precision()))
	}
	if t.Kind().AllowsScale() {
		n.AddField("scale", precisionString(t.Scale()))
	}
	n.AddField("nullable", strconv.FormatBool(t.IsNullable()))
	if cs := t.Charset(); cs != nil {
		n.AddField("charset", cs.Name())
	}
	if c := t.Collation(); c != nil {
		n.AddField("collation", c.Name())
	}
	if q, ok := t.IntervalQualifier(); ok {
		n.AddField("qualifier", q.String())
	}

	switch {
	case polytype.IsMap(t):
		n.AddChild("key", TypeTree(t.KeyType()))
		n.AddChild("value", TypeTree(t.ValueType()))
	case t.ComponentType() != nil:
		n.AddChild("component", TypeTree(t.ComponentType()))
	case t.IsStruct():
		for _, field := range t.Fields() {
			n.AddChild(field.Name, TypeTree(field.Type))
		}
	}
	return n
}

func precisionString(p int) string {
	if p == polytype.NotSpecified {
		return "unspecified"
	}
	return strconv.Itoa(p)
}

// CastLattice draws an edge from every source kind to each target kind it may be assigned to.
func CastLattice(coerce bool) (*gographviz.Graph, error) {
	rules := polytype.Rules(coerce)
	graph := gographviz.NewGraph()
	graph.Directed = true
	if err := graph.AddAttr("", "rankdir", "LR"); err != nil {
		return nil, errors.Wrap(err, "couldn't set graph direction")
	}

	added := make(map[polytype.Kind]bool)
	addKind := func(kind polytype.Kind) error {
		if added[kind] {
			return nil
		}
		added[kind] = true
		return graph.AddNode("", identifier(kind.String()), map[string]string{
			"label": strconv.Quote(kind.String()),
		})
	}

	for _, to := range polytype.AllTypes {
		if !rules.Defined(to) {
			continue
		}
		if err := addKind(to); err != nil {
			return nil, errors.Wrapf(err, "couldn't add kind %s", to)
		}
		for _, from := range rules.Sources(to) {
			if from == to {
				continue
			}
			if err := addKind(from); err != nil {
				return nil, errors.Wrapf(err, "couldn't add kind %s", from)
			}
			if err := graph.AddEdge(identifier(from.String()), identifier(to.String()), true, nil); err != nil {
				return nil, errors.Wrapf(err, "couldn't add edge %s -> %s", from, to)
			}
		}
	}
	return graph, nil
}

// PrecedenceList draws the explicit precedence list of a kind as a chain, highest precedence first.
func PrecedenceList(kind polytype.Kind) (*gographviz.Graph, error) {
	list, ok := polytype.PrecedenceListForKind(kind)
	if !ok {
		return nil, fmt.Errorf("kind %s has no explicit precedence list", kind)
	}
	graph := gographviz.NewGraph()
	graph.Directed = true
	kinds := list.Kinds()
	for i, k := range kinds {
		if err := graph.AddNode("", identifier(k.String()), map[string]string{
			"label": strconv.Quote(k.String()),
		}); err != nil {
			return nil, errors.Wrapf(err, "couldn't add kind %s", k)
		}
		if i > 0 {
			if err := graph.AddEdge(identifier(kinds[i-1].String()), identifier(k.String()), true, nil); err != nil {
				return nil, errors.Wrapf(err, "couldn't add edge %s -> %s", kinds[i-1], k)
			}
		}
	}
	return graph, nil
}
