package models

import (
	"time"
)

type UserRecord struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"` // signup timestamp
	Role      string    `json:"role"`
}
