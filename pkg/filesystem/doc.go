// Package filesystem provides the filesystem primitives plate works with.
//
// Everything goes through afero so the OS filesystem is used in production
// and an in-memory one in tests. All helpers take the name of the
// housekeeping file (OS metadata such as .DS_Store) that must be ignored when
// listing, checking for emptiness and copying.
package filesystem
