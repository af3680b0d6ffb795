// Package sqldocs exposes the catalog SQL schema bundles from the docs tree.
package sqldocs

import _ "embed"

// SQLite contains the catalog DDL for SQLite.
//
//go:embed sqlite.sql
var SQLite string

// Postgres contains the catalog DDL for Postgres.
//
//go:embed postgres.sql
var Postgres string
