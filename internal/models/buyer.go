package models

import "time"

// Buyer is the account submitting RFQs. Authentication and the verification
// flow itself are external; the intake pipeline only reads the outcome.
type Buyer struct {
	ID              string    `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`
	Phone           string    `db:"phone" json:"phone"`
	ContactVerified bool      `db:"contact_verified" json:"contactVerified"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// Category groups vendors and job types under a slug.
type Category struct {
	Slug string `db:"slug" json:"slug"`
	Name string `db:"name" json:"name"`
}

// JobType is a finer-grained service under a category. When a submission
// omits the job type, the first one by position is auto-selected.
type JobType struct {
	Slug         string `db:"slug" json:"slug"`
	CategorySlug string `db:"category_slug" json:"categorySlug"`
	Name         string `db:"name" json:"name"`
	Position     int    `db:"position" json:"position"`
}
