// Package storage provides object storage for profile media.
//
// It wraps the MinIO S3 client behind a small Client interface so features
// (and tests, via the mocks subpackage) never depend on the concrete client.
// Profile photos uploaded through the psychologists feature live here.
package storage
