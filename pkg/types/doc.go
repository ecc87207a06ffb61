// Package types defines the core types and interfaces used throughout modpack.
// This includes the FS and Pather interfaces, as well as data structures like
// ModInfo, Selection, and PackageResult.
package types
