package weft

import (
	"errors"
	"fmt"

	"github.com/hupe1980/weft/model"
)

var (
	// ErrIndexOutOfRange is returned when a NodeIndex was never allocated.
	ErrIndexOutOfRange = errors.New("node index out of range")

	// ErrCycleDetected is returned by TopologicalOrder when the graph is cyclic.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrNodeNotFound is returned when an external id is not part of the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrDuplicateNode is returned when an id table contains the same id twice.
	ErrDuplicateNode = errors.New("duplicate node id")

	// ErrEdgeNotFound is returned when a weight refers to an edge that does not exist.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrExecutorClosed is returned by bulk queries on a closed Executor.
	ErrExecutorClosed = errors.New("executor closed")
)

// IndexOutOfRangeError reports an index outside [0, Len).
//
// It matches ErrIndexOutOfRange with errors.Is.
type IndexOutOfRangeError struct {
	Index model.NodeIndex
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("node index out of range: %d (node count %d)", e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Unwrap() error { return ErrIndexOutOfRange }

// NodeNotFoundError reports an unknown external id.
//
// It matches ErrNodeNotFound with errors.Is.
type NodeNotFoundError struct {
	ID string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node not found: %q", e.ID)
}

func (e *NodeNotFoundError) Unwrap() error { return ErrNodeNotFound }
