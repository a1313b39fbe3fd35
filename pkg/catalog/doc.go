// Package catalog discovers demo videos and turns them into video-list entries.
//
// A run resolves the video identifiers (from a list file or by scanning the demo
// root), resolves the model directories, and emits one Entry for every
// root/model/video path that exists. Entries may carry prompt assets found in a
// sibling asset tree by file-name stem.
//
// Nothing here writes to disk; see package splice for the target rewrite.
package catalog

import "errors"

// ErrNotFound is returned when the demo root or an explicit ID list file does not exist.
var ErrNotFound = errors.New("not found")
