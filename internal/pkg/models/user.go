package models

import (
	"strings"
	"time"
)

// User is the customer view used for reward settlement and display enrichment
type User struct {
	ID           string    `json:"id" db:"id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Phone        string    `json:"phone" db:"phone"`
	RewardPoints int       `json:"rewardPoints" db:"reward_points"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// DisplayName joins first and last name
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Service is the catalogue entry a booking refers to
type Service struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Rating      float64   `json:"rating" db:"rating"`
	ReviewCount int       `json:"reviewCount" db:"review_count"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// RatingAggregate is an average rating over a set of reviews
type RatingAggregate struct {
	Average float64 `db:"average"`
	Count   int     `db:"count"`
}
