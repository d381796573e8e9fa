// Package model はドメインモデルを定義する。
package model

// Role はユーザーの役割を表す。参照できるデータの範囲を決定する。
type Role string

const (
	// RoleCustomer はサービスを予約する顧客。
	RoleCustomer Role = "customer"
	// RoleProvider は訪問医療サービスの提供者。
	RoleProvider Role = "provider"
	// RoleAdmin は全データを参照できる管理者。
	RoleAdmin Role = "admin"
)

// IsValid は定義済みの役割かどうかを返す。
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// DefaultRating は新規ユーザーの初期評価値。
const DefaultRating = 5

// User はプラットフォームの利用者を表す。
// Specialization は提供者のみが使用するプロフィール項目。
type User struct {
	ID             int64
	Role           Role
	Name           string
	Email          string
	AvatarURL      string
	Phone          string
	Address        string
	Bio            string
	Specialization string
	Rating         int
}

// UserUpdate はユーザーの部分更新を表す。
// nilのフィールドは変更せず、既存の値を維持する。
type UserUpdate struct {
	Role           *Role
	Name           *string
	Email          *string
	AvatarURL      *string
	Phone          *string
	Address        *string
	Bio            *string
	Specialization *string
	Rating         *int
}
