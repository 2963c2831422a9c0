package common

import (
	"github.com/go-pg/pg/v10"
	cs "github.com/webtor-io/common-services"
)

// DB returns the shared pool or ErrNoDB when PostgreSQL is not configured.
func DB(p *cs.PG) (*pg.DB, error) {
	if p == nil {
		return nil, ErrNoDB
	}
	db := p.Get()
	if db == nil {
		return nil, ErrNoDB
	}
	return db, nil
}
