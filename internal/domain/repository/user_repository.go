package repository

import "github.com/akazantsev/pricewatch/internal/domain/entity"

// UserRepository is the persistence port for User accounts.
type UserRepository interface {
	Create(u *entity.User) error // assigns u.ID
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
