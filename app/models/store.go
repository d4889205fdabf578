package models

import (
	"fmt"
	"net/url"
	"time"
)

type Store struct {
	ID             string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OwnerID        string `gorm:"size:36;not null;uniqueIndex"`
	Name           string `gorm:"size:100;not null"`
	Subdomain      string `gorm:"size:50;not null;uniqueIndex"`
	Description    string `gorm:"type:text"`
	LogoPath       string `gorm:"size:255"`
	WhatsappNumber string `gorm:"size:20;not null"`
	Products       []Product
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// WhatsAppLink builds a wa.me link for the store, optionally pre-filled
// with an inquiry about the given product.
func (s *Store) WhatsAppLink(productTitle string) string {
	base := fmt.Sprintf("https://wa.me/%s", s.WhatsappNumber)
	if productTitle == "" {
		return base
	}
	message := fmt.Sprintf("Hi, I'm interested in %s", productTitle)
	return base + "?text=" + url.QueryEscape(message)
}
