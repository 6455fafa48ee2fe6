package models

import "time"

const (
	StatusOpened = "Opened"
	StatusClosed = "Closed"
)

// Query is a client-submitted support ticket. QueryID is assigned by the
// store in the form Q0001, Q0002, ... QueryClosedTime stays nil until the
// query is closed, and the image blob is immutable once set at creation.
type Query struct {
	QueryID          string     `gorm:"primaryKey" json:"queryId"`
	MailID           string     `json:"mailId"`
	MobileNumber     string     `json:"mobileNumber"`
	QueryHeading     string     `json:"queryHeading"`
	QueryDescription string     `gorm:"type:text" json:"queryDescription"`
	Status           string     `gorm:"default:'Opened'" json:"status"`
	QueryCreatedTime time.Time  `json:"queryCreatedTime"`
	QueryClosedTime  *time.Time `json:"queryClosedTime"`
	Image            []byte     `gorm:"type:blob" json:"-"`
}
