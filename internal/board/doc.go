// Package board is the task store: it partitions a user's tasks into the
// four board columns, applies edits and moves to them, and merges them
// back into the record shared by every user.
//
// Mutations are pure. They take a Columns value, return a new one and
// report whether anything changed; invalid input leaves the board as it
// was. Only Store touches persistence.
package board
