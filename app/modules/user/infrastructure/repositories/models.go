package userdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is an account of the leaderboard site. Email is stored lower-cased.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,nullzero,default:gen_random_uuid()" json:"_id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Email         string    `bun:"email,unique,notnull" json:"email"`
	PasswordHash  string    `bun:"password_hash,notnull" json:"-"`
	Admin         bool      `bun:"admin,notnull,default:false" json:"admin"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"-"`
}
