package db

import (
	"context"
	"fmt"
)

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
	SQLite   DBType = "sqlite"
)

func ParseDBType(v string) (DBType, error) {
	switch t := DBType(v); t {
	case Postgres, Mongo, SQLite:
		return t, nil
	}
	return "", fmt.Errorf("DB_TYPE %q not supported", v)
}

// DB is a store handle owned by the process from startup to shutdown.
type DB interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
}
