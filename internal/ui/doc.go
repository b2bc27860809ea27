// Package ui implements progress rendering and an interactive terminal
// interface using bubbletea's Elm architecture.
//
// [RenderBar] is the pure progress renderer used by the plain CLI path; the
// caller decides whether to overwrite the current line or append.
//
// The TUI provides a three-view workflow for a copy run:
//  1. [WaitingView] : Blocked until the player is connected and writable
//  2. [TransferView] : Live per-file progress with a bar
//  3. [ResultView] : Copy/skip/byte totals
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View
// pattern. Progress updates flow through a channel from the transfer engine,
// providing non-blocking status reporting during copies.
package ui
