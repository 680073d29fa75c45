package planner

import "github.com/beka-birhanu/decision-maze/maze"

// node is a frontier entry of the search.
type node struct {
	pos    maze.CellPosition
	g      float64 // accumulated jittered cost from start
	h      float64 // heuristic sampled when the node was discovered
	f      float64 // g + h
	parent *node
	index  int // index in the heap
}

// priorityQueue implements heap.Interface ordered by f.
type priorityQueue []*node

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].f < pq[j].f
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	n := x.(*node)
	n.index = len(*pq)
	*pq = append(*pq, n)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}
