package model

// Service は予約可能な訪問医療サービスを表す。
// 作成後は変更されない（更新操作は存在しない）。
// Price は最小通貨単位（セント）で保持する。
type Service struct {
	ID              int64
	Name            string
	Description     string
	Category        string
	Price           int64
	DurationMinutes int
	ImageURL        string
	IsFeatured      bool
}
