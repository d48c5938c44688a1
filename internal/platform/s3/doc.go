// Package s3 provides a client for Hetzner Object Storage (S3-compatible).
//
// The hcloud driver stores each shared-storage service as one bucket. This
// package covers the bucket lifecycle the driver needs: create, list by
// prefix, write small marker objects, empty and delete.
package s3
