package client

import "time"

// Client is a customer organisation whose staff are paid through the console.
type Client struct {
	ID        string
	Name      string
	Code      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
