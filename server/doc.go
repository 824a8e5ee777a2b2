// Package server exposes the ingestion pipeline and searcher as a JSON HTTP
// API: multipart uploads into a session, text search against a collection,
// and a listing of existing collections.
package server
