// Package sticker maps user-chosen names to Telegram sticker file ids.
//
// The [Catalog] serves reads from an in-memory map and persists every
// mutation by rewriting one JSON array file through storage.Storage. A
// mutation becomes visible only after the write succeeded.
package sticker
