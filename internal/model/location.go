package model

import "time"

// Location is where an auctioned item physically sits. Created by admins,
// read by everyone; no update or delete path exists.
type Location struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	City      string    `json:"city" gorm:"size:100;not null;uniqueIndex:idx_city_country"`
	Country   string    `json:"country" gorm:"size:100;not null;uniqueIndex:idx_city_country"`
	Latitude  string    `json:"latitude,omitempty" gorm:"size:20"`
	Longitude string    `json:"longitude,omitempty" gorm:"size:20"`
	CreatedAt time.Time `json:"created_at"`
}
