// Package data embeds the MariaDB init SQL used when the database
// container is created without a mounted initdb directory.
package data

import (
	_ "embed"
)

//go:embed initdb/mariadb/002-ddl-tables.sql
var InitdbMariaDBTables string

//go:embed initdb/mariadb/003-ddl-privileges.sql
var InitdbMariaDBPrivileges string
