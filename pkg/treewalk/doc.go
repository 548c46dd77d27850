// Package treewalk provides a generic recursive tree remover driven by
// caller-supplied hooks.
//
// The walker itself knows nothing about sanitization. It decides the
// traversal order and calls one hook per file and one per directory;
// the hooks decide what "remove" means. Its one behavioral contract,
// inherited from rimraf-style removers, is retry-on-failure for
// directories: the directory hook is tried before the children are
// processed, and a failure is read as "not removable yet" rather than
// as fatal. The walker then removes the children and calls the hook a
// second time; only a second failure propagates. Sanitization layers
// use that contract as an explicit protocol to get a directory visited
// twice.
package treewalk
