package model

import "time"

// Review is created by user submission and mutated only by the
// helpful-vote increment.
type Review struct {
	ID        string    `json:"id"`
	ProductID int       `json:"product_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Helpful   int       `json:"helpful"`
	Verified  bool      `json:"verified"`
}
