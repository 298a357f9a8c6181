// Package storage persists saved charts and publishes rendered artifacts.
//
// [Store] keeps charts (a dataset plus its render options) under generated
// UUIDs. [MongoStore] backs the HTTP server; [MemoryStore] is used when no
// MongoDB URI is configured and in tests.
//
// [Uploader] writes artifacts to S3 through the AWS SDK upload manager, so
// large PNG and PDF files are sent as multipart uploads.
package storage
