// Package domain contains the client model and service contract.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Client is a simple validated value holder referenced by invoices.
type Client struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Email     string       `gorm:"type:text;not null" json:"email"`
	Address   string       `gorm:"type:text;not null" json:"address"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
