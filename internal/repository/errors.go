package repository

import "errors"

var (
	ErrNotFound    = errors.New("record not found")
	ErrUnknownType = errors.New("unknown repository type")
)

// типы хранилищ из конфига
const (
	TypeInMemory = "inmemory"
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)
