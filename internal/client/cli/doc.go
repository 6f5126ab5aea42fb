// Package cli is the interactive terminal client.
//
// The client keeps one long-lived list screen for the whole session and at most
// one detail screen, opened with "open <id>" and torn down with "back". Every
// write goes through the mutation sequencer, which patches whichever screens are
// live, so the list and the open post never need a refetch after a write.
package cli
