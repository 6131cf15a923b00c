// Package ui contains the Bubble Tea program that hosts the talkpad screens:
// the communication board and the chat screen with its topbar, contact
// sidebar, message pane, on-screen keyboard and settings modal.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Every tea.Msg is
//     routed through a typed handler registry so each message type is handled
//     by a focused function (key presses, gamepad events, backend updates,
//     command results).
//   - Key presses and gamepad events are reduced to the same four verbs:
//     move in a direction, activate, backspace and back. The focus broker
//     decides which region receives them; while nothing is focused the region
//     selector does.
//   - Region callbacks (selecting a contact, pressing Enter on the keyboard,
//     toggling a setting) run synchronously inside the navigator and queue
//     tea.Cmd values that finishUpdate hands back to Bubble Tea.
//
// State ownership:
//   - Cursor state lives in the navigators (internal/nav/...): one list per
//     list region, the keyboard for the on-screen keyboard and the board
//     navigator for the communication board.
//   - Contacts, the open conversation and settings are provided by
//     internal/state and kept in sync by the dispatcher.
//   - Collaborator work (sqlite, SMS gateway, notifications) runs through the
//     internal/ui/command bus so it never blocks the event loop.
//
// Backend interactions:
//   - A backend.Watcher streams store snapshots; Update waits for those events
//     and hands them to applyBackendEvent, which refreshes the stores and the
//     regions that render them.
package ui
