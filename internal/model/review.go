package model

import "time"

// Review は完了した予約に対する顧客の評価を表す。作成後は変更されない。
type Review struct {
	ID         int64
	BookingID  int64
	CustomerID int64
	ProviderID int64
	Rating     int
	Comment    string
	CreatedAt  time.Time
}
