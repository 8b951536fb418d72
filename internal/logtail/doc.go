// Package logtail reads the tail of the partysync log file for the TUI.
//
// # Reading
//
// Read keeps a ring buffer of maxLines strings and scans the file once, so
// memory stays bounded by the requested window rather than the file size.
// Lines come back oldest first. A missing file reads as empty.
//
// # Entries
//
// The logger writes zap JSON lines. ParseLine decodes one into an Entry
// (time, level, logger, message, extra fields). Lines that are not JSON are
// kept verbatim so a truncated write never hides output. Entry.Format
// renders a compact single line; styling by level is left to the UI.
package logtail
