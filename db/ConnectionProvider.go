package db

import (
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/config"
)

type ConnectionProvider interface {
	GetConnection() *pg.DB
}

type connectionProviderImpl struct {
	creds config.DatabaseConfig
	db    *pg.DB
}

func NewConnectionProvider(creds *config.DatabaseConfig) ConnectionProvider {
	return &connectionProviderImpl{creds: *creds}
}

func (c *connectionProviderImpl) GetConnection() *pg.DB {
	if c.db == nil {
		c.db = pg.Connect(&pg.Options{
			Addr:       fmt.Sprintf("%s:%d", c.creds.Host, c.creds.Port),
			User:       c.creds.Username,
			Password:   c.creds.Password,
			Database:   c.creds.Name,
			PoolSize:   20,
			MaxRetries: 5,
		})
	}
	return c.db
}
