package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Shared repository errors
var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert trips a unique constraint.
	ErrDuplicate = errors.New("record already exists")
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	HackathonRepository    *HackathonRepository
	RegistrationRepository *RegistrationRepository
	TeamRepository         *TeamRepository
	IdeaRepository         *IdeaRepository
	NotificationRepository *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		HackathonRepository:    NewHackathonRepository(db),
		RegistrationRepository: NewRegistrationRepository(db),
		TeamRepository:         NewTeamRepository(db),
		IdeaRepository:         NewIdeaRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
