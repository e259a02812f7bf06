package store

import (
	"errors"
	"time"

	"github.com/go-redis/redis/v7"
	"github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/Imran-2020331101/evalia/apperr"
)

const roleCacheTTL = time.Hour

// Roles is the role catalog, a read-through cache over the reference table.
// A nil redis client bypasses the cache and hits the database directly.
type Roles struct {
	Db    *gorm.DB
	Redis *redis.Client
}

func (s *Roles) ByName(name string) (*Role, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get("role:" + name).Result(); err == nil {
			var role Role
			if err := json.Unmarshal([]byte(cached), &role); err == nil {
				return &role, nil
			}
		}
	}

	var role Role
	err := s.Db.Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.WithMessage(apperr.ErrNotFound, "role not found with name: "+name)
	}
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrDatabase, "")
	}

	if s.Redis != nil {
		if b, err := json.Marshal(role); err == nil {
			s.Redis.Set("role:"+name, string(b), roleCacheTTL)
		}
	}
	return &role, nil
}
