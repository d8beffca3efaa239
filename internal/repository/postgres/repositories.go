package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories groups concrete PostgreSQL repository implementations.
type Repositories struct {
	Accounts     *AccountRepository
	Applications *ApplicationRepository
	Reports      *ReportRepository
	Rides        *RideRepository
}

// NewRepositories wires all repositories backed by the provided pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Accounts:     NewAccountRepository(pool),
		Applications: NewApplicationRepository(pool),
		Reports:      NewReportRepository(pool),
		Rides:        NewRideRepository(pool),
	}
}
