// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package store persists named command records in a single JSON file.
//
// Every mutation re-reads the file, applies the change and writes the whole
// snapshot back through a temporary file and an atomic rename. On the OS
// filesystem mutations also hold an exclusive lock on a sibling lock file so
// that two invocations of the tool cannot interleave their read-modify-write.
// A missing or corrupt file reads as an empty snapshot.
package store
