package rates

import (
	"fmt"

	"github.com/bdevries/parceldesk-backend/internal/parcel"
	"github.com/shopspring/decimal"
)

// Rate is one shipping rate line as produced by a carrier. The merger never
// mutates rates owned by other carriers; it only reads them and appends its own.
type Rate struct {
	Carrier      string
	Method       string
	CarrierTitle string
	MethodTitle  string
	Price        decimal.Decimal
	Cost         decimal.Decimal
}

// Node is one entry in a carrier rate-result tree: a leaf rate, an error
// marker, or a nested result.
type Node struct {
	Rate   *Rate
	Err    error
	Nested []Node
}

// Sink receives the flattened, ordered rate list.
type Sink interface {
	Append(rate Rate)
}

// MethodBuilder derives this module's own rates from a matching parent rate.
// Implementations price the methods off the parent, so the package weight must
// be current before the call.
type MethodBuilder interface {
	BuildMethods(parent Rate) ([]Rate, error)
}

// Merger flattens a rate-result tree into a sink, appending module rates after
// the first rate whose carrier is in the configured parent set. State is
// request-scoped; a Merger must not be reused across requests.
type Merger struct {
	parents      map[string]struct{}
	pkg          *parcel.Package
	items        []parcel.CartItem
	builder      MethodBuilder
	alreadyAdded bool
	errored      bool
}

// NewMerger builds a merger for one request. parentCarriers is the configured
// list of carrier identifiers this module may attach to.
func NewMerger(parentCarriers []string, pkg *parcel.Package, items []parcel.CartItem, builder MethodBuilder) (*Merger, error) {
	if pkg == nil {
		return nil, fmt.Errorf("package required")
	}
	if builder == nil {
		return nil, fmt.Errorf("method builder required")
	}
	parents := make(map[string]struct{}, len(parentCarriers))
	for _, carrier := range parentCarriers {
		parents[carrier] = struct{}{}
	}
	return &Merger{
		parents: parents,
		pkg:     pkg,
		items:   items,
		builder: builder,
	}, nil
}

// Merge walks the tree depth-first, preserving the relative order of untouched
// rates. An error node marks the result as errored but does not stop the walk.
func (m *Merger) Merge(nodes []Node, sink Sink) error {
	for _, node := range nodes {
		if node.Err != nil {
			m.errored = true
		}
		if node.Rate != nil {
			sink.Append(*node.Rate)
			if err := m.maybeAttach(*node.Rate, sink); err != nil {
				return err
			}
		}
		if len(node.Nested) > 0 {
			if err := m.Merge(node.Nested, sink); err != nil {
				return err
			}
		}
	}
	return nil
}

// Errored reports whether any node in the merged trees carried an error.
func (m *Merger) Errored() bool {
	return m.errored
}

// maybeAttach appends module rates after a matching parent rate. The guard flag
// is set even when zero methods end up attached, so a second matching parent in
// the same request cannot double-fire.
func (m *Merger) maybeAttach(parent Rate, sink Sink) error {
	if m.alreadyAdded {
		return nil
	}
	if _, ok := m.parents[parent.Carrier]; !ok {
		return nil
	}

	// Pricing of attached methods may depend on weight, refresh it first.
	m.pkg.SetWeightFromItems(m.items)

	methods, err := m.builder.BuildMethods(parent)
	if err != nil {
		return err
	}
	for _, method := range methods {
		sink.Append(method)
	}

	m.alreadyAdded = true
	return nil
}

// List is a Sink that collects rates in order.
type List struct {
	rates []Rate
}

// Append adds a rate to the end of the list.
func (l *List) Append(rate Rate) {
	l.rates = append(l.rates, rate)
}

// Rates returns the collected rates in append order.
func (l *List) Rates() []Rate {
	return l.rates
}
