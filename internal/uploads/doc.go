// Package uploads implements the transfer pipeline that moves deliverable
// files into remote storage. Jobs are serialized: at most one job transfers
// at a time, and each job walks its file list in order with a resume cursor,
// pre-scan conflict detection for flat uploads, and per-file conflict
// handling for folder uploads.
package uploads
