package crmboard

import "embed"

// EmailFS holds the HTML and plaintext email templates.
//
//go:embed templates/emails
var EmailFS embed.FS

// MigrationsFS holds the versioned PostgreSQL schema files.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// Version is reported by the CLI and the health endpoint.
const Version = "0.4.0"
