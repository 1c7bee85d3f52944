// Package storage defines a small key/value file storage abstraction with
// pluggable backends and a lifecycle component.
//
// Backends register a factory on import:
//
//	import _ "github.com/kbukum/slaybot/storage/local"
//
//	storage:
//	  provider: local
//	  base_path: ./data
package storage
