// Package migrations embeds the tasks schema for each supported SQL store.
package migrations

import _ "embed"

//go:embed 001_create_tasks.up.sql
var Postgres string

//go:embed 001_create_tasks.mysql.up.sql
var MySQL string
