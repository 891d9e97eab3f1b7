package wmatch

import "math"

// arc is one residual arc of the flow network.
type arc struct {
	to   int
	cap  int
	cost int64
	rev  int
}

// network is the residual network of a bipartite matching instance:
// source → demand (cap 1, cost 0) → supply (cap 1, edge cost) → sink.
type network struct {
	adj [][]arc
}

func (n *network) addArc(u, v int, c int64) {
	n.adj[u] = append(n.adj[u], arc{to: v, cap: 1, cost: c, rev: len(n.adj[v])})
	n.adj[v] = append(n.adj[v], arc{to: u, cap: 0, cost: -c, rev: len(n.adj[u]) - 1})
}

// ensureSolved recomputes the best matching if anything changed.
//
// Steps:
//  1. Clean dirty nodes so every active edge is current.
//  2. Build the residual network over live nodes and active edges.
//  3. Augment along cheapest source→sink paths (SPFA) until none remain;
//     each augmentation is the cheapest way to grow the matching by one,
//     so the final matching is maximum and of minimum cost among maximum
//     matchings.
//  4. Read the matching back from the saturated demand→supply arcs.
func (m *Matcher[D, S]) ensureSolved() {
	// 1) edges up to date
	m.clean()
	if m.solved {
		return
	}

	// 2) network layout: 0 source, 1..nd demands, then supplies, then sink
	nd, ns := len(m.demands), len(m.supplies)
	source, sink := 0, nd+ns+1
	net := &network{adj: make([][]arc, nd+ns+2)}
	for i := range m.demands {
		d := &m.demands[i]
		if !d.live {
			continue
		}
		net.addArc(source, 1+i, 0)
		for _, e := range d.edges {
			if e.active {
				net.addArc(1+i, 1+nd+int(e.supply), e.cost)
			}
		}
	}
	for j := range m.supplies {
		if m.supplies[j].live {
			net.addArc(1+nd+j, sink, 0)
		}
	}

	// 3) successive shortest paths
	flow := 0
	var total int64
	for {
		dist, prevNode, prevArc := net.spfa(source)
		if dist[sink] == math.MaxInt64 {
			break
		}
		for v := sink; v != source; v = prevNode[v] {
			a := &net.adj[prevNode[v]][prevArc[v]]
			a.cap--
			net.adj[v][a.rev].cap++
		}
		flow++
		total += dist[sink]
	}

	// 4) read back
	m.match = make([]SupplyID, nd)
	m.matchCost = make([]int64, nd)
	live := 0
	for i := range m.demands {
		m.match[i] = NoSupply
		if !m.demands[i].live {
			continue
		}
		live++
		for _, a := range net.adj[1+i] {
			if a.to > nd && a.to <= nd+ns && a.cap == 0 {
				m.match[i] = SupplyID(a.to - 1 - nd)
				m.matchCost[i] = a.cost

				break
			}
		}
	}
	m.unmatched = live - flow
	m.cost = total
	m.solved = true
	m.opts.Logger.Debug("wmatch: evaluated",
		"demands", live, "matched", flow, "unmatched", m.unmatched, "cost", total)
}

// spfa finds cheapest distances from src over arcs with spare capacity.
// Residual arcs may have negative costs but the network never holds a
// negative cycle, since every augmentation follows a shortest path.
func (n *network) spfa(src int) (dist []int64, prevNode, prevArc []int) {
	size := len(n.adj)
	dist = make([]int64, size)
	prevNode = make([]int, size)
	prevArc = make([]int, size)
	inQueue := make([]bool, size)
	for i := range dist {
		dist[i] = math.MaxInt64
		prevNode[i] = -1
	}
	dist[src] = 0
	queue := []int{src}
	inQueue[src] = true
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		inQueue[u] = false
		for i, a := range n.adj[u] {
			if a.cap <= 0 {
				continue
			}
			if nd := dist[u] + a.cost; nd < dist[a.to] {
				dist[a.to] = nd
				prevNode[a.to] = u
				prevArc[a.to] = i
				if !inQueue[a.to] {
					inQueue[a.to] = true
					queue = append(queue, a.to)
				}
			}
		}
	}

	return dist, prevNode, prevArc
}
