package gridastar

import "container/heap"

// nodeHeap implements heap.Interface over search nodes, ordered by F and then H.
type nodeHeap[T any] []*SearchNode[T]

func (queue nodeHeap[T]) Len() int { return len(queue) }
func (queue nodeHeap[T]) Less(i, j int) bool {
	if queue[i].F != queue[j].F {
		return queue[i].F < queue[j].F
	}
	return queue[i].H < queue[j].H
}
func (queue nodeHeap[T]) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *nodeHeap[T]) Push(x any) {
	node := x.(*SearchNode[T])
	node.IndexInQueue = len(*queue)
	*queue = append(*queue, node)
}

func (queue *nodeHeap[T]) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	node := oldQueue[n-1]
	oldQueue[n-1] = nil
	node.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return node
}

// PriorityQueue is a min-heap of search nodes keyed by (F, H). Nodes remember
// their slot, so Update re-heapifies in O(log n) without a scan.
type PriorityQueue[T any] struct {
	nodes nodeHeap[T]
}

func NewPriorityQueue[T any](capacity int) *PriorityQueue[T] {
	return &PriorityQueue[T]{nodes: make(nodeHeap[T], 0, capacity)}
}

func (q *PriorityQueue[T]) Len() int { return len(q.nodes) }

func (q *PriorityQueue[T]) Push(node *SearchNode[T]) { heap.Push(&q.nodes, node) }

// Pop removes and returns the node with the lowest F (then H).
// It returns nil on an empty queue.
func (q *PriorityQueue[T]) Pop() *SearchNode[T] {
	if len(q.nodes) == 0 {
		return nil
	}
	return heap.Pop(&q.nodes).(*SearchNode[T])
}

// Update restores heap order after node's scores changed. node must be queued.
func (q *PriorityQueue[T]) Update(node *SearchNode[T]) {
	heap.Fix(&q.nodes, node.IndexInQueue)
}

// Clear drops every queued node in O(1), keeping the backing storage.
// Slot indexes of dropped nodes are left stale; queue membership is tracked
// by the caller's open set, not by IndexInQueue.
func (q *PriorityQueue[T]) Clear() {
	q.nodes = q.nodes[:0]
}

// each visits the queued nodes in heap order.
func (q *PriorityQueue[T]) each(fn func(node *SearchNode[T])) {
	for _, node := range q.nodes {
		fn(node)
	}
}
