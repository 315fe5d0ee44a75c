package models

import "time"

// User represents a fan or admin operator account
type User struct {
	ID            string     `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	Email         string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password      string     `gorm:"type:varchar(255);not null" json:"-"`
	Nickname      string     `gorm:"type:varchar(100);not null" json:"nickname"`
	WalletAddress *string    `gorm:"type:varchar(255);column:wallet_address" json:"wallet_address"`
	IsAdmin       bool       `gorm:"not null;default:false;column:is_admin" json:"is_admin"`
	IsVerified    bool       `gorm:"not null;default:false;column:is_verified" json:"is_verified"`
	Balance       float64    `gorm:"type:numeric(15,2);not null;default:0" json:"balance"`
	LastConnected *time.Time `gorm:"column:last_connected" json:"last_connected"`
	CreatedAt     time.Time  `json:"created_at"`
}

// HasWallet reports whether the user can receive an on-chain payout push.
// Unverified or wallet-less users receive a claimable ledger credit instead.
func (u *User) HasWallet() bool {
	return u.IsVerified && u.WalletAddress != nil && *u.WalletAddress != ""
}
