// # Description
//
// Package flow holds the control flow graph (CFG) model used by the revert
// propagation stage of the compiler middle end.
//
// ## Control Flow Graph (CFG)
//
// Every function and modifier body is represented as one Graph whose nodes
// come out of a shared Arena:
//
//   - Each node is one statement-level step of the body; edges are the
//     possible control transfers between them.
//   - Entry, exit and revert sentinels bracket the graph. Exit models a
//     normal return, revert models abort-with-rollback.
//   - Nodes are created once by a flow builder, read during analysis and
//     rewritten in place by the pruner. They are never freed individually;
//     the arena outlives both passes and all downstream readers.
//
// ## Package Functionality
//
// The main features of this package include:
//
//  1. The Arena, Node and Graph types forming the graph model.
//  2. The Registry mapping (contract context, callable) keys to graphs.
//  3. Breadth-first traversal and GraphViz rendering helpers.
package flow
