// Package storage defines the remote folder/file abstraction used by the
// upload pipeline, along with conflict resolutions and rename-candidate
// selection. The drive subpackage provides the Google Drive implementation;
// Memory backs tests and dry runs.
package storage
