// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing and curating the media library:
//  1. [LibraryView] : Browse the video library in a windowed list
//  2. [SearchView] : Filter videos with a debounced query
//  3. [DetailView] : Read a single video's metadata as rendered markdown
//  4. [PlaylistsView] : Browse playlists, create, rename and delete them
//  5. [PlaylistDetailView] : Reorder and remove playlist entries
//  6. [ConfirmView] : Confirm destructive operations
//  7. [BulkView] : Monitor real-time progress of bulk operations
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Both lists are [vlist.Model] instances that window their items around the viewport; playlist list messages travel wrapped
// in [playlistListMsg] so the two lists never consume each other's render reports.
// Progress updates flow through a channel from the LibraryEngine, providing non-blocking status reporting during bulk deletes,
// playlist adds and syncs.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
// Transient outcomes (saves, failures, bulk summaries) surface as right-aligned toasts managed by [ToastsModel].
package ui
